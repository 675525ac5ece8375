package debian

// Sources returns the source package of each package,
// falling back to the package name when no source is set.
// Each source appears once, at its first position.
func Sources(pkgs []*Package) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, p := range pkgs {
		src := p.Source
		if src == "" {
			src = p.Name
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}
