package models

// Dropdown options for form fields
// These constants eliminate duplication across clients

var (
	// RoastLevels defines the available roast level options for beans
	RoastLevels = []string{
		"Ultra-Light",
		"Light",
		"Medium-Light",
		"Medium",
		"Medium-Dark",
		"Dark",
	}

	// PourTypes defines the built-in pour type options for stages
	PourTypes = []PourType{
		PourCircle,
		PourCenter,
		PourIce,
		PourBypass,
		PourWait,
		PourExtraction,
		PourBeverage,
		PourOther,
	}

	// RoastStates defines the bean lifecycle states
	RoastStates = []string{
		RoastStateGreen,
		RoastStateRoasted,
	}
)
