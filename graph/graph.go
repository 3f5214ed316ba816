package graph

import (
	"strconv"
	"strings"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/lexicon"
)

// NodeKind identifies the entity type behind a graph node.
type NodeKind int

const (
	// KindAnimal is a node for an adoptable-animal record.
	KindAnimal NodeKind = iota + 1
	// KindUser is a node for an owner.
	KindUser
	// KindLocation is a node for a coordinate shared by georeferenced owners.
	KindLocation
)

// Predicate is the typed label of an edge. Using an enum instead of
// free-form strings makes the edge vocabulary exhaustive at compile time.
type Predicate int

const (
	Name Predicate = iota + 1
	Species
	Description
	PostedBy
	IsLocatedIn
	HasLocation
	Lat
	Long
	City
)

var predicateNames = map[Predicate]string{
	Name:        "name",
	Species:     "species",
	Description: "description",
	PostedBy:    "postedBy",
	IsLocatedIn: "isLocatedIn",
	HasLocation: "hasLocation",
	Lat:         "lat",
	Long:        "long",
	City:        "city",
}

func (p Predicate) String() string {
	if s, ok := predicateNames[p]; ok {
		return s
	}
	return "predicate(" + strconv.Itoa(int(p)) + ")"
}

// Target is the object of an edge: either another node or a string literal.
type Target struct {
	node    *Node
	literal string
}

// NodeTarget wraps a node as an edge target.
func NodeTarget(n *Node) Target { return Target{node: n} }

// LiteralTarget wraps a string literal as an edge target.
func LiteralTarget(s string) Target { return Target{literal: s} }

// Node returns the target node and true when the target is a node.
func (t Target) Node() (*Node, bool) { return t.node, t.node != nil }

// Literal returns the literal string form of the target.
func (t Target) Literal() string { return t.literal }

// Edge is a labeled, directed connection from a node to a target.
type Edge struct {
	Predicate Predicate
	Target    Target
}

// Node is a graph node with its outgoing edges in insertion order.
type Node struct {
	Key   string
	Kind  NodeKind
	Edges []Edge
}

func (n *Node) addEdge(p Predicate, t Target) {
	n.Edges = append(n.Edges, Edge{Predicate: p, Target: t})
}

// hasSpecies reports whether the node carries a species edge.
// Walk sampling starts from exactly these nodes.
func (n *Node) hasSpecies() bool {
	for _, e := range n.Edges {
		if e.Predicate == Species {
			return true
		}
	}
	return false
}

// Graph is a labeled property graph built from an entity snapshot.
// Nodes keep insertion order so identical snapshots produce identical graphs.
type Graph struct {
	nodes []*Node
	byKey map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byKey: make(map[string]*Node)}
}

// Node returns the node with the given key, or nil.
func (g *Graph) Node(key string) *Node {
	return g.byKey[key]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// AnimalNodes returns the nodes carrying a species edge, in insertion order.
func (g *Graph) AnimalNodes() []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.hasSpecies() {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the node count.
func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) ensure(key string, kind NodeKind) *Node {
	if n, ok := g.byKey[key]; ok {
		return n
	}
	n := &Node{Key: key, Kind: kind}
	g.byKey[key] = n
	g.nodes = append(g.nodes, n)
	return n
}

// AnimalKey derives the node key for an animal id.
func AnimalKey(id string) string { return "animal:" + id }

// UserKey derives the node key for a user id.
func UserKey(id string) string { return "user:" + id }

// LocationKey derives the node key for a coordinate. The key is a pure
// function of (lon, lat), so owners at the same point share one node.
func LocationKey(lon, lat float64) string {
	return "location:" + formatCoord(lon) + "_" + formatCoord(lat)
}

// AnimalIDFromKey extracts the animal id from an animal node key.
func AnimalIDFromKey(key string) (string, bool) {
	return strings.CutPrefix(key, "animal:")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Build assembles the knowledge graph from the current entity snapshot.
// It is pure with respect to its input: identical snapshots give identical
// graphs. Missing fields become empty-string literals.
func Build(animals []*core.Animal, users []*core.User) *Graph {
	g := NewGraph()

	userByID := make(map[string]*core.User, len(users))
	for _, user := range users {
		if user == nil {
			continue
		}
		userByID[user.ID] = user

		node := g.ensure(UserKey(user.ID), KindUser)
		node.addEdge(Name, LiteralTarget(user.Name))

		if user.Location != nil {
			loc := g.ensure(LocationKey(user.Location.Lon, user.Location.Lat), KindLocation)
			if len(loc.Edges) == 0 {
				loc.addEdge(Lat, LiteralTarget(formatCoord(user.Location.Lat)))
				loc.addEdge(Long, LiteralTarget(formatCoord(user.Location.Lon)))
				loc.addEdge(City, LiteralTarget(user.Location.City))
			}
			node.addEdge(HasLocation, NodeTarget(loc))
		}
	}

	for _, animal := range animals {
		if animal == nil {
			continue
		}

		species := animal.Species
		if strings.TrimSpace(species) == "" {
			species = lexicon.ExtractCategory(animal.Description)
		}
		species = strings.ToLower(strings.TrimSpace(species))

		node := g.ensure(AnimalKey(animal.ID), KindAnimal)
		node.addEdge(Name, LiteralTarget(animal.Name))
		node.addEdge(Species, LiteralTarget(species))
		node.addEdge(Description, LiteralTarget(animal.Description))

		owner, owned := userByID[animal.OwnerID]
		if animal.OwnerID == "" || !owned {
			continue
		}
		node.addEdge(PostedBy, NodeTarget(g.Node(UserKey(owner.ID))))
		if owner.Location != nil {
			loc := g.Node(LocationKey(owner.Location.Lon, owner.Location.Lat))
			if loc != nil {
				node.addEdge(IsLocatedIn, NodeTarget(loc))
			}
		}
	}

	return g
}
