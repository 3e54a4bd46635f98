package catalog

// Default returns the built-in role catalog used when no catalog file is
// configured.
func Default() *Catalog {
	c, err := New(map[string]*JobTemplate{
		"qa": {
			Title:  "QA Engineer",
			Skills: []string{"testing", "automation", "selenium", "jest", "api"},
			Questions: []string{
				"Tell me about your experience with software testing.",
				"How do you decide what to automate in a test suite?",
				"Describe a tricky bug you found and how you reported it.",
			},
		},
		"support": {
			Title:  "Customer Support Specialist",
			Skills: []string{"communication", "empathy", "troubleshooting", "patience"},
			Questions: []string{
				"Tell me about a time you turned an unhappy customer around.",
				"How do you handle a problem you cannot solve on your own?",
				"Walk me through how you triage incoming support requests.",
			},
		},
		"frontend": {
			Title:  "Frontend Developer",
			Skills: []string{"javascript", "react", "css", "html", "accessibility"},
			Questions: []string{
				"Tell me about a user interface you are proud of building.",
				"How do you keep a large frontend codebase maintainable?",
				"What do you do to make your pages accessible?",
			},
		},
	})
	if err != nil {
		// The built-in catalog is validated by tests; an error here is a bug.
		panic(err)
	}
	return c
}
