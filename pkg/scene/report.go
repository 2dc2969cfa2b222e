package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/anchor/pkg/constraint"
	"github.com/matzehuels/anchor/pkg/errors"
)

// Kind names the statement type of an outcome.
type Kind string

const (
	KindDock       Kind = "dock"
	KindAlign      Kind = "align"
	KindGrid       Kind = "grid"
	KindConstraint Kind = "constraint"
)

// Outcome is the result of one scene statement.
type Outcome struct {
	Kind        Kind     `json:"kind" bson:"kind"`
	Source      string   `json:"source" bson:"source"`
	OK          bool     `json:"ok" bson:"ok"`
	Code        string   `json:"code,omitempty" bson:"code,omitempty"`
	Error       string   `json:"error,omitempty" bson:"error,omitempty"`
	Constraints []string `json:"constraints,omitempty" bson:"constraints,omitempty"`
}

// Report lists every statement of a built scene with its outcome and the
// views whose layout is still ambiguous.
type Report struct {
	Scene     string    `json:"scene" bson:"scene"`
	Outcomes  []Outcome `json:"outcomes" bson:"outcomes"`
	Ambiguous []string  `json:"ambiguous,omitempty" bson:"ambiguous,omitempty"`
}

func (r *Report) add(kind Kind, source string, cs constraint.Constraints, err error) {
	o := Outcome{Kind: kind, Source: source, OK: err == nil, Constraints: cs.Strings()}
	if err != nil {
		o.Code = string(errors.GetCode(err))
		o.Error = errors.UserMessage(err)
		o.Constraints = nil
	}
	r.Outcomes = append(r.Outcomes, o)
}

// Failed returns the number of statements that failed.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK {
			n++
		}
	}
	return n
}

// Clean reports whether every statement succeeded and no layout is
// ambiguous.
func (r Report) Clean() bool { return r.Failed() == 0 && len(r.Ambiguous) == 0 }

var (
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render writes a terminal listing of r.
func (r Report) Render(w io.Writer) error {
	var b strings.Builder
	for _, o := range r.Outcomes {
		if o.OK {
			fmt.Fprintf(&b, "%s %-10s %s\n", styleOK.Render("ok"), o.Kind, o.Source)
			for _, c := range o.Constraints {
				fmt.Fprintf(&b, "   %s\n", styleMuted.Render(c))
			}
			continue
		}
		fmt.Fprintf(&b, "%s %-10s %s\n", styleFail.Render("!!"), o.Kind, o.Source)
		fmt.Fprintf(&b, "   %s %s\n", styleFail.Render(o.Code), o.Error)
	}
	for _, name := range r.Ambiguous {
		fmt.Fprintf(&b, "%s %s has an ambiguous layout\n", styleWarn.Render("??"), name)
	}
	fmt.Fprintf(&b, "%s\n", styleMuted.Render(fmt.Sprintf("%d statements, %d failed, %d ambiguous",
		len(r.Outcomes), r.Failed(), len(r.Ambiguous))))
	_, err := io.WriteString(w, b.String())
	return err
}
