package tui

import (
	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// newEstimateForm builds the estimate form bound to vals. The college
// group is hidden when the education level is high school.
func newEstimateForm(d *Dataset, vals *FormValues) *huh.Form {
	if vals.Childcare == "" {
		vals.Childcare = childcareOptions[0]
	}
	if vals.Education == "" {
		vals.Education = EducationCollege
	}
	if vals.State == "" && len(d.States) > 0 {
		vals.State = d.States[0]
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How will you raise your child?").
				Options(huh.NewOptions(childcareOptions...)...).
				Value(&vals.Childcare),

			huh.NewSelect[string]().
				Title("State").
				Options(huh.NewOptions(d.States...)...).
				Height(8).
				Value(&vals.State),

			huh.NewInput().
				Title("High school graduation year").
				Placeholder("2030").
				CharLimit(4).
				Validate(validateGradYear).
				Value(&vals.GradYear),

			huh.NewSelect[string]().
				Title("Education level").
				Options(huh.NewOptions(EducationHighSchool, EducationCollege)...).
				Value(&vals.Education),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("College type").
				Options(huh.NewOptions(d.Types...)...).
				Value(&vals.Type),

			huh.NewSelect[string]().
				Title("College length").
				Options(huh.NewOptions(d.Lengths...)...).
				Value(&vals.Length),
		).WithHideFunc(func() bool {
			return vals.Education == EducationHighSchool
		}),
	).WithTheme(theme.Huh()).WithShowHelp(true)
}
