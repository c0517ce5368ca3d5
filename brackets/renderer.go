package brackets

import (
	"html/template"
	"strings"
)

// The renderer is a pure function of the bracket value: it produces the
// complete markup on every call, so re-rendering replaces rather than patches.

const bracketTemplate = `<div class="bracket">
{{- range .Rounds}}
  <div class="bracket-round" data-round="{{.Number}}">
    <h3 class="bracket-round-label">{{.Label}}</h3>
{{- range .Matches}}
    <div class="bracket-match" data-match="{{.ID}}">
      <span class="{{.HomeClass}}" data-team="{{.Home.ID}}">{{.Home.Name}}</span>
      <span class="{{.AwayClass}}" data-team="{{.Away.ID}}">{{.Away.Name}}</span>
    </div>
{{- end}}
  </div>
{{- end}}
</div>
`

const emptyBracketMarkup = `<div class="bracket bracket--empty"><p class="bracket-placeholder">Not enough teams to display a bracket.</p></div>
`

var bracketTmpl = template.Must(template.New("bracket").Parse(bracketTemplate))

type matchView struct {
	ID         string
	Home, Away Team
	HomeClass  string
	AwayClass  string
}

type roundView struct {
	Number  int
	Label   string
	Matches []matchView
}

type bracketView struct {
	Rounds []roundView
}

// RenderHTML converts a bracket into labeled column markup, one column per
// round. Bye slots stay in the tree as real nodes but carry a de-emphasis
// class. A nil bracket yields the "not enough teams" placeholder.
func RenderHTML(b *Bracket) (string, error) {
	if b == nil || len(b.Rounds) == 0 {
		return emptyBracketMarkup, nil
	}

	view := bracketView{Rounds: make([]roundView, 0, len(b.Rounds))}
	for _, round := range b.Rounds {
		rv := roundView{
			Number:  round.Number,
			Label:   RoundLabel(b.TotalRounds, round.Number),
			Matches: make([]matchView, 0, len(round.Matches)),
		}
		for _, match := range round.Matches {
			rv.Matches = append(rv.Matches, matchView{
				ID:        match.ID,
				Home:      match.Home,
				Away:      match.Away,
				HomeClass: teamClass(match.Home),
				AwayClass: teamClass(match.Away),
			})
		}
		view.Rounds = append(view.Rounds, rv)
	}

	var sb strings.Builder
	if err := bracketTmpl.Execute(&sb, view); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func teamClass(t Team) string {
	if t.IsBye {
		return "bracket-team bracket-team--bye"
	}
	return "bracket-team"
}
