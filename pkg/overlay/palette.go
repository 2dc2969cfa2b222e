package overlay

import (
	"math/rand/v2"

	"github.com/matzehuels/anchor/pkg/attribute"
)

// Class groups attributes that share a marker colour.
type Class int

const (
	ClassEdge   Class = iota // left, right, top, bottom, leading, trailing and margins
	ClassSize                // width, height
	ClassCenter              // centres and baselines
)

func (c Class) String() string {
	switch c {
	case ClassSize:
		return "size"
	case ClassCenter:
		return "center"
	default:
		return "edge"
	}
}

// ClassOf returns the colour class of a.
func ClassOf(a attribute.Attribute) Class {
	switch a {
	case attribute.Width, attribute.Height:
		return ClassSize
	case attribute.CenterX, attribute.CenterY, attribute.FirstBaseline, attribute.LastBaseline:
		return ClassCenter
	default:
		return ClassEdge
	}
}

// Colors is one palette entry: a colour per Class.
type Colors [3]string

// For returns the colour of class c.
func (cs Colors) For(c Class) string { return cs[c] }

// Palette holds the marker colour triples handed out to views.
var Palette = []Colors{
	{"#2196F3", "#1976D2", "#EF5350"},
	{"#03A9F4", "#039BE5", "#FFC107"},
	{"#03A9F4", "#64B5F6", "#FF80AB"},
	{"#00BCD4", "#4DD0E1", "#FDD835"},
	{"#00BCD4", "#00ACC1", "#FFA726"},
	{"#3F51B5", "#5C6BC0", "#FFC107"},
	{"#673AB7", "#512DA8", "#2196F3"},
	{"#9C27B0", "#BA68C8", "#FFCA28"},
	{"#673AB7", "#9575CD", "#2196F3"},
	{"#F44336", "#FF5252", "#FFA726"},
	{"#F44336", "#E53935", "#FDD835"},
	{"#E91E63", "#F06292", "#42A5F5"},
	{"#FF5722", "#FF6E40", "#FBC02D"},
	{"#FF5722", "#E64A19", "#3F51B5"},
	{"#FF9800", "#FB8C00", "#F44336"},
	{"#FF9800", "#FFB74D", "#29B6F6"},
	{"#FFC107", "#FFA000", "#26C6DA"},
	{"#FFC107", "#FFD54F", "#4FC3F7"},
	{"#CDDC39", "#C0CA33", "#009688"},
	{"#8BC34A", "#9CCC65", "#FF8A65"},
	{"#CDDC39", "#689F38", "#FFD740"},
	{"#4CAF50", "#66BB6A", "#FFC107"},
	{"#009688", "#00897B", "#4DD0E1"},
	{"#009688", "#80CBC4", "#FDD835"},
	{"#607D8B", "#455A64", "#FDD835"},
	{"#607D8B", "#37474F", "#F06292"},
	{"#9E9E9E", "#757575", "#42A5F5"},
	{"#9E9E9E", "#BDBDBD", "#FF7043"},
	{"#795548", "#A1887F", "#FFCA28"},
	{"#795548", "#5D4037", "#4CAF50"},
}

// dealer hands out palette entries in shuffled order, reshuffling a fresh
// copy once the palette is exhausted.
type dealer struct {
	rng  *rand.Rand
	left []Colors
}

func newDealer(seed uint64) *dealer {
	return &dealer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *dealer) next() Colors {
	if len(d.left) == 0 {
		d.left = append([]Colors(nil), Palette...)
		d.rng.Shuffle(len(d.left), func(i, j int) { d.left[i], d.left[j] = d.left[j], d.left[i] })
	}
	c := d.left[len(d.left)-1]
	d.left = d.left[:len(d.left)-1]
	return c
}
