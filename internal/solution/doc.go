// Package solution builds project forests for the resolver.
//
// Two sources are supported. LoadSolution parses a Visual Studio .sln file
// and reads each project's items from its directory on disk; solution
// folders keep their solution items and nest the projects listed in the
// NestedProjects section. LoadSnapshot reads a JSON forest exported by a
// running IDE, which preserves the IDE's own view of each project.
//
// A Workspace wraps either source together with an active document and
// satisfies resolver.Host.
package solution
