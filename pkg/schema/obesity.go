package schema

const (
	GroupGeneral = "General information"
	GroupHabits  = "Daily Habits"
)

var (
	yesNo      = []string{"yes", "no"}
	frequency  = []string{"Always", "Frequently", "Sometimes", "no"}
	transports = []string{"Public_Transportation", "Automobile", "Walking", "Motorbike", "Bike"}
)

// ObesitySchema returns the attribute set consumed by the obesity prediction
// service. Only height carries enforced bounds; age and weight accept any
// number.
func ObesitySchema() Schema {
	return MustNew("obesity",
		Enumerated("gender", []string{"Male", "Female"},
			WithLabel("Gender"), WithGroup(GroupGeneral)),
		Numeric("age",
			WithLabel("Age"), WithStep(1), WithDefault(float64(0)), WithGroup(GroupGeneral)),
		Numeric("weight",
			WithLabel("Weight (in kg)"), WithStep(0.01), WithDefault(float64(0)), WithGroup(GroupGeneral)),
		Numeric("height",
			WithLabel("Height (in cm)"), WithMin(145), WithMax(198), WithStep(0.01),
			WithDefault(float64(145)), WithGroup(GroupGeneral)),
		Enumerated("family_history", yesNo,
			WithLabel("Obesity in family history?"), WithGroup(GroupGeneral)),
		Enumerated("favc", yesNo,
			WithLabel("Do you eat high caloric food frequently?"), WithGroup(GroupHabits)),
		Numeric("fcvc", WithChoices(1, 2, 3),
			WithLabel("Do you usually eat vegetables in your meals?"), WithGroup(GroupHabits)),
		Numeric("ncp", WithChoices(1, 2, 3, 4),
			WithLabel("How many main meals do you have daily?"), WithGroup(GroupHabits)),
		Enumerated("caec", frequency,
			WithLabel("Do you eat any food between meals?"), WithGroup(GroupHabits)),
		Enumerated("smoke", yesNo,
			WithLabel("Do you smoke?"), WithGroup(GroupHabits)),
		Numeric("ch2o", WithChoices(1, 2, 3),
			WithLabel("How much water do you drink daily? (in litres)"), WithGroup(GroupHabits)),
		Enumerated("scc", yesNo,
			WithLabel("Do you monitor the calories you eat daily?"), WithGroup(GroupHabits)),
		Numeric("faf", WithChoices(1, 2, 3),
			WithLabel("How often do you have physical activity?"), WithGroup(GroupHabits)),
		Numeric("tue", WithChoices(0, 1, 2),
			WithLabel("How much time do you use technological devices such as cell phone, videogames, television, computer and others?"),
			WithGroup(GroupHabits)),
		Enumerated("calc", frequency,
			WithLabel("How often do you drink alcohol?"), WithGroup(GroupHabits)),
		Enumerated("mtrans", transports,
			WithLabel("What is your main means of transportation?"), WithGroup(GroupHabits)),
	)
}
