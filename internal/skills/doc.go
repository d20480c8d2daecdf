// Package skills provides the skill definitions: declarative skills defined
// in JSONC that can be simple (single agent) or workflow (DAG of steps),
// loaded into a Registry. Nothing in this module registers skills as
// tools or executes them.
package skills
