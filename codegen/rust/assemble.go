// Package rust assembles compiled visual-script systems into a complete
// generated source file for the runtime engine. The compiler emits only
// procedure bodies; this package supplies the envelope around them:
// imports, the per-system type and trait implementation, and the
// registration function the generated game calls at startup.
package rust

import (
	"fmt"
	"strings"

	"github.com/dreamengine-xyz/go-vscript/compiler"
)

// SystemName converts a script name into the generated system type name:
// non-alphanumeric characters are dropped, words are capitalized, and a
// "System" suffix is appended. "player movement" becomes
// "PlayerMovementSystem".
func SystemName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				b.WriteRune(r - 'a' + 'A')
			} else {
				b.WriteRune(r)
			}
			upper = false
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			upper = false
		default:
			// Separators reset capitalization; everything else drops.
			upper = true
		}
	}
	b.WriteString("System")
	return b.String()
}

// AssembleSystem wraps one compiled procedure body in its system type
// and trait implementation.
func AssembleSystem(cs *compiler.CompiledSystem) string {
	var b strings.Builder
	name := SystemName(cs.Name)

	b.WriteString(fmt.Sprintf("pub struct %s {}\n\n", name))
	b.WriteString(fmt.Sprintf("impl System for %s {\n", name))
	b.WriteString("    fn execute(&mut self, world: &mut World, physics: &mut PhysicsWorld, dt: f32) {\n")
	for _, line := range strings.Split(cs.Code, "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("        " + line + "\n")
	}
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// AssembleFile generates the full systems source file for a set of
// compiled systems: imports, one type per system, and a
// register_systems function adding each to the schedule. The required
// capability list of every system is recorded as a header comment for
// the build step.
func AssembleFile(systems []*compiler.CompiledSystem) string {
	var b strings.Builder

	b.WriteString("// Generated by go-vscript. Do not edit.\n")
	for _, cs := range systems {
		if len(cs.Dependencies) > 0 {
			b.WriteString(fmt.Sprintf("// system %s requires: %s\n",
				SystemName(cs.Name), strings.Join(cs.Dependencies, ", ")))
		}
	}
	b.WriteString("\nuse dream_engine::{World, PhysicsWorld, System, SystemSchedule, EntityId};\n")
	b.WriteString("use dream_engine::{Transform, Sprite, RigidBody, Vec2, Vec3};\n\n")

	for _, cs := range systems {
		b.WriteString(AssembleSystem(cs))
		b.WriteString("\n")
	}

	b.WriteString("pub fn register_systems(schedule: &mut SystemSchedule) {\n")
	for _, cs := range systems {
		b.WriteString(fmt.Sprintf("    schedule.add_system(Box::new(%s {}));\n", SystemName(cs.Name)))
	}
	b.WriteString("}\n")
	return b.String()
}
