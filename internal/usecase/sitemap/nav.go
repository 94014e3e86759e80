package sitemap

// NavNode is one entry in the static navigation tree. The tree mirrors
// the site's fixed page structure; dynamic content is merged in at render
// time.
type NavNode struct {
	Path     string
	Children []NavNode
}

// DefaultNav returns the site's static page tree.
func DefaultNav() []NavNode {
	return []NavNode{
		{Path: "/"},
		{Path: "/about"},
		{Path: "/services", Children: []NavNode{
			{Path: "/services/strategy"},
			{Path: "/services/operations"},
			{Path: "/services/digital-transformation"},
			{Path: "/services/people-and-organization"},
		}},
		{Path: "/industries", Children: []NavNode{
			{Path: "/industries/financial-services"},
			{Path: "/industries/energy"},
			{Path: "/industries/public-sector"},
			{Path: "/industries/healthcare"},
		}},
		{Path: "/insights"},
		{Path: "/credentials"},
		{Path: "/careers"},
		{Path: "/contact"},
	}
}

// flatten walks the tree depth-first, parents before children, skipping
// excluded paths (children of an excluded node are still visited; an
// excluded section landing page does not hide its subpages).
func flatten(nodes []NavNode, excluded map[string]struct{}) []string {
	var out []string
	for _, n := range nodes {
		if _, skip := excluded[n.Path]; !skip {
			out = append(out, n.Path)
		}
		out = append(out, flatten(n.Children, excluded)...)
	}
	return out
}
