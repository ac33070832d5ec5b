// Package ordering provides axis level ordering strategies for grid plots.
//
// Lexical ordering sorts levels alphabetically. FirstSeen keeps the order in
// which levels appear in the data. Cluster orders levels by hierarchical
// clustering of their binary presence profiles, so rows with similar
// category combinations end up adjacent.
package ordering

import (
	"sort"

	"github.com/maflot/diceplot/pkg/errors"
)

// Strategy names an axis ordering algorithm.
type Strategy string

const (
	Lexical   Strategy = "lexical"
	FirstSeen Strategy = "first-seen"
	Cluster   Strategy = "cluster"
)

// Default is the strategy used when none is configured.
const Default = Lexical

// Strategies lists the valid strategy names.
func Strategies() []string {
	return []string{string(Lexical), string(FirstSeen), string(Cluster)}
}

// Parse validates a strategy name.
func Parse(name string) (Strategy, error) {
	switch Strategy(name) {
	case Lexical, FirstSeen, Cluster:
		return Strategy(name), nil
	case "":
		return Default, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidOrder,
			"unknown ordering strategy: %q (valid: lexical, first-seen, cluster)", name)
	}
}

// Apply orders levels according to the strategy. levels must be unique and
// in first-seen order. profiles maps each level to the set of combination
// keys it occurs with; only Cluster reads it.
func (s Strategy) Apply(levels []string, profiles map[string][]string) ([]string, error) {
	out := make([]string, len(levels))
	copy(out, levels)

	switch s {
	case FirstSeen:
		return out, nil
	case Lexical, "":
		sort.Strings(out)
		return out, nil
	case Cluster:
		return clusterOrder(out, profiles), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidOrder, "unknown ordering strategy: %q", string(s))
	}
}

// clusterOrder runs agglomerative clustering with average linkage over
// Jaccard distances between presence profiles and returns the leaf order,
// reversed to put the densest branch on top.
func clusterOrder(levels []string, profiles map[string][]string) []string {
	if len(levels) < 2 {
		return levels
	}

	sets := make([]map[string]bool, len(levels))
	for i, level := range levels {
		set := make(map[string]bool, len(profiles[level]))
		for _, key := range profiles[level] {
			set[key] = true
		}
		sets[i] = set
	}

	type cluster struct {
		leaves []int
	}
	clusters := make([]cluster, len(levels))
	for i := range levels {
		clusters[i] = cluster{leaves: []int{i}}
	}

	// Pairwise leaf distances, reused by the linkage update.
	dist := make([][]float64, len(levels))
	for i := range dist {
		dist[i] = make([]float64, len(levels))
		for j := range dist[i] {
			if i != j {
				dist[i][j] = jaccard(sets[i], sets[j])
			}
		}
	}

	linkage := func(a, b cluster) float64 {
		sum := 0.0
		for _, x := range a.leaves {
			for _, y := range b.leaves {
				sum += dist[x][y]
			}
		}
		return sum / float64(len(a.leaves)*len(b.leaves))
	}

	for len(clusters) > 1 {
		bi, bj, best := 0, 1, linkage(clusters[0], clusters[1])
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if d := linkage(clusters[i], clusters[j]); d < best {
					bi, bj, best = i, j, d
				}
			}
		}
		merged := cluster{leaves: append(append([]int{}, clusters[bi].leaves...), clusters[bj].leaves...)}
		next := make([]cluster, 0, len(clusters)-1)
		for k, c := range clusters {
			if k != bi && k != bj {
				next = append(next, c)
			}
		}
		clusters = append(next, merged)
	}

	leaves := clusters[0].leaves
	out := make([]string, 0, len(leaves))
	for i := len(leaves) - 1; i >= 0; i-- {
		out = append(out, levels[leaves[i]])
	}
	return out
}

// jaccard returns 1 minus the Jaccard similarity of two sets. Two empty
// sets have distance zero.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return 1 - float64(inter)/float64(union)
}
