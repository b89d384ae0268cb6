// Package launch assembles the final process invocation for a merged
// descriptor, spawns it, and supervises its lifetime, classifying how and
// why it terminated.
package launch

// Plan is the concrete invocation built for one launch attempt. It is
// constructed once, consumed by Spawn, and discarded.
type Plan struct {
	JavaExec   string
	JVMArgs    []string
	MainClass  string
	GameArgs   []string
	WorkingDir string
}

// Args returns the full argument vector passed to the Java executable:
// JVM arguments, then the main class, then game arguments.
func (p *Plan) Args() []string {
	args := make([]string, 0, len(p.JVMArgs)+1+len(p.GameArgs))
	args = append(args, p.JVMArgs...)
	args = append(args, p.MainClass)
	args = append(args, p.GameArgs...)
	return args
}
