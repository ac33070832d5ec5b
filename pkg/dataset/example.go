package dataset

import (
	"fmt"
	"math/rand"
)

// Example data mirroring the demo datasets shipped with the original R/Python
// dice plot packages: cell types by pathways, with pathology variables as the
// die sides and a pathway group as the cell frame color.

var exampleCellTypes = []string{
	"Neuron", "Astrocyte", "Microglia", "Oligodendrocyte", "Endothelial",
}

var examplePathways = []string{
	"Apoptosis", "Inflammation", "Metabolism", "Signal Transduction", "Synaptic Transmission",
	"Cell Cycle", "DNA Repair", "Protein Synthesis", "Lipid Metabolism", "Neurotransmitter Release",
	"Oxidative Stress", "Energy Production", "Calcium Signaling", "Synaptic Plasticity", "Immune Response",
}

// examplePathwayGroups maps each pathway to exactly one group, so the group
// frame color is well defined per column.
var examplePathwayGroups = map[string]string{
	"Apoptosis":               "BBB-linked",
	"Inflammation":            "Cell-proliferation",
	"Metabolism":              "Other",
	"Signal Transduction":     "BBB-linked",
	"Synaptic Transmission":   "Cell-proliferation",
	"Cell Cycle":              "Cell-proliferation",
	"DNA Repair":              "Other",
	"Protein Synthesis":       "Other",
	"Lipid Metabolism":        "Other",
	"Neurotransmitter Release": "BBB-linked",
	"Oxidative Stress":        "Other",
	"Energy Production":       "Other",
	"Calcium Signaling":       "BBB-linked",
	"Synaptic Plasticity":     "Cell-proliferation",
	"Immune Response":         "Other",
}

// examplePathologyVariables are die-side categories, in canonical order.
var examplePathologyVariables = []string{
	"Amyloid", "NFT", "Tangles", "Plaq N", "CERAD", "Braak",
}

// ExampleDice generates the demo dice-plot dataset with numVars pathology
// variables (1-6). Each cell-type/pathway combination gets a random non-empty
// subset of the variables. The generator is seeded, so output is reproducible.
//
// Columns: CellType, Pathway, PathologyVariable, Group.
func ExampleDice(numVars int) (*Table, error) {
	if numVars < 1 || numVars > len(examplePathologyVariables) {
		return nil, fmt.Errorf("numVars must be 1-%d, got %d", len(examplePathologyVariables), numVars)
	}

	vars := examplePathologyVariables[:numVars]
	rng := rand.New(rand.NewSource(123))

	t, err := New([]string{"CellType", "Pathway", "PathologyVariable", "Group"})
	if err != nil {
		return nil, err
	}

	for _, ct := range exampleCellTypes {
		for _, pw := range examplePathways {
			n := 1 + rng.Intn(numVars)
			for _, v := range sampleWithout(rng, vars, n) {
				if err := t.Append(ct, pw, v, examplePathwayGroups[pw]); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}

// ExampleDomino generates the demo domino-plot dataset: differential
// expression per gene, cell type, and contrast.
//
// Columns: var, gene, CellType, Contrast, logFC, adjPValue.
func ExampleDomino() (*Table, error) {
	genes := []string{"GeneA", "GeneB", "GeneC"}
	cellTypes := []string{"Neuron", "Astrocyte", "Microglia"}
	contrasts := []string{"Type1", "Type2"}

	rng := rand.New(rand.NewSource(123))

	t, err := New([]string{"var", "gene", "CellType", "Contrast", "logFC", "adjPValue"})
	if err != nil {
		return nil, err
	}

	i := 0
	for _, g := range genes {
		for _, ct := range cellTypes {
			for _, c := range contrasts {
				i++
				logFC := rng.Float64()*4 - 2   // [-2, 2)
				pval := rng.Float64() * 0.08  // mostly significant
				if err := t.Append(
					fmt.Sprintf("var%d", i), g, ct, c,
					fmt.Sprintf("%.4f", logFC),
					fmt.Sprintf("%.4f", pval),
				); err != nil {
					return nil, err
				}
			}
		}
	}
	return t, nil
}

// sampleWithout picks n distinct values from vals in stable canonical order.
func sampleWithout(rng *rand.Rand, vals []string, n int) []string {
	idx := rng.Perm(len(vals))[:n]
	picked := make(map[int]bool, n)
	for _, i := range idx {
		picked[i] = true
	}
	out := make([]string, 0, n)
	for i, v := range vals {
		if picked[i] {
			out = append(out, v)
		}
	}
	return out
}
