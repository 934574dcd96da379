package engine

const (
	maxNarrative     = 6
	maxToolkit       = 8
	maxRelatedTopics = 10
	maxResources     = 8
)

// Tone selects which variant of a concept message is wanted.
type Tone int

const (
	Good Tone = iota
	Improve
	Add
)

// ConceptMessage holds the three feedback variants for one rubric label.
type ConceptMessage struct {
	Good    string
	Improve string
	Add     string
}

var conceptMessages = map[string]ConceptMessage{
	"PED formula": {
		Good:    "You use the PED formula (PED = %ΔQd / %ΔP) to anchor your explanation and interpret elasticity correctly.",
		Improve: "State the formula explicitly and interpret the sign (e.g., PED ≈ −0.4 means quantity falls 0.4% when price rises 1%).",
		Add:     "Add one worked number from the case to show a concrete calculation of PED.",
	},
	"Short vs long run": {
		Good:    "You distinguish habits in the short run from substitution in the long run—key for tax impact.",
		Improve: "Make the time path explicit and tie it to policy timing (immediate vs. persistent effects).",
		Add:     "Note how availability/marketing of low-sugar options increases long-run elasticity.",
	},
	"Determinants/substitutes": {
		Good:    "You cover relevant determinants (substitutes, habit/brand, budget share).",
		Improve: "Link each determinant directly to a sentence in the case context.",
		Add:     "Briefly rank the determinants by likely strength and justify your ranking.",
	},
	"Diagram labels": {
		Good:    "You reference key labels so the diagram supports your explanation.",
		Improve: "Refer to labels inside the paragraph (Pc, Pp, Q0→Q1, vertical gap = tax).",
		Add:     "Add a neat diagram with axes (P,Q), S and S+tax, Pc, Pp, Q0→Q1, and shaded DWL.",
	},
	"Incidence (elasticities)": {
		Good:    "You link tax incidence to relative elasticities and identify who bears more burden.",
		Improve: "State the extreme cases to frame the intuition.",
		Add:     "Qualitatively quantify burden shares and justify using elasticity.",
	},
	"Revenue & DWL": {
		Good:    "You identify tax revenue and the deadweight loss correctly.",
		Improve: "Explain why DWL appears and how it scales with elasticity/tax size.",
		Add:     "On the diagram: label revenue rectangle (t×Q1) and DWL triangle.",
	},
	"Negative externality": {
		Good:    "You justify the tax as internalising health externalities.",
		Improve: "Name 2+ cost channels and connect to welfare reasoning.",
		Add:     "Bring one evidence point (study/country example).",
	},
	"Regressive burden": {
		Good:    "You recognise potential regressivity for low-income households.",
		Improve: "Explain the mechanism and discuss fairness explicitly.",
		Add:     "Propose offsets: fountains, vouchers, or tiered rates.",
	},
	"Mitigation / earmarking": {
		Good:    "You suggest using revenue to fund health equity measures.",
		Improve: "Make earmarks specific and measurable.",
		Add:     "Add a timeline and one KPI to show realism.",
	},
}

// Message looks up the tone variant for a concept label, falling back to
// a generic sentence for labels without a table entry.
func Message(label string, tone Tone) string {
	m, ok := conceptMessages[label]
	switch tone {
	case Good:
		if ok && m.Good != "" {
			return m.Good
		}
		return "Good: " + label + "."
	case Improve:
		if ok && m.Improve != "" {
			return m.Improve
		}
		return "Improve: " + label + "."
	default:
		if ok && m.Add != "" {
			return m.Add
		}
		return "Add: " + label + "."
	}
}

// Narrative is the good/improve/add feedback for one question or for
// the submission as a whole.
type Narrative struct {
	Good    []string
	Improve []string
	Add     []string
}

// ExpandQuestion writes one good message per covered concept and one
// improve plus one add message per uncovered concept.
func ExpandQuestion(check RubricCheck) Narrative {
	var n Narrative
	for _, label := range check.Found {
		n.Good = append(n.Good, Message(label, Good))
	}
	for _, label := range check.Missing {
		n.Improve = append(n.Improve, Message(label, Improve))
		n.Add = append(n.Add, Message(label, Add))
	}
	n.Good = uniqueLimit(n.Good, maxNarrative)
	n.Improve = uniqueLimit(n.Improve, maxNarrative)
	n.Add = uniqueLimit(n.Add, maxNarrative)
	return n
}

// OverallNarrative is the fixed submission-level feedback, with one extra
// strength noted when the case lists a toolkit.
func OverallNarrative(study Study) Narrative {
	good := []string{
		"Accurate core theory and relevant application to the case.",
		"Clear structure with definitions up front and appropriate terms.",
	}
	if len(study.Toolkit) > 0 {
		good = append(good, "Good alignment with the listed toolkit—cross-reference it in answers.")
	}
	return Narrative{
		Good: good,
		Improve: []string{
			"Make diagram references explicit in text (Pc, Pp, Q0→Q1, vertical gap = tax).",
			"Evaluate with criteria (elasticities, equity, time horizon, evidence) and end with a justified judgement.",
			"Tighten topic sentences so each paragraph answers the command term directly.",
		},
		Add: []string{
			"Include one number (e.g., PED ≈ −0.4) and one evidence point (country example).",
			"Propose a concrete earmark (e.g., 20% revenue → school fountains) with a measurable KPI.",
			"Add a one-line conclusion answering the question directly.",
		},
	}
}

// StudyBundle passes the case lists through, bounded in length.
func StudyBundle(meta CaseMeta) Study {
	return Study{
		Toolkit:       head(meta.Toolkit, maxToolkit),
		RelatedTopics: head(meta.RelatedTopics, maxRelatedTopics),
		Resources:     head(meta.Resources, maxResources),
	}
}

// uniqueLimit drops empty and repeated entries, keeping first occurrences,
// and truncates to n. It never returns nil.
func uniqueLimit(in []string, n int) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

func head(in []string, n int) []string {
	if len(in) > n {
		in = in[:n]
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
