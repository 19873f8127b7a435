package service

import "github.com/hunt-wet/hunt-intel-backend/types"

// Curated state regulations. Updated seasonally from each state agency's
// published guide, never guessed.

var marylandRegulations = types.StateRegulations{
	State:       "MD",
	StateName:   "Maryland",
	LastUpdated: "2024-10-04",
	Source: types.RegulationSource{
		Name:            "Maryland Department of Natural Resources",
		HuntingGuideURL: "https://dnr.maryland.gov/huntersguide/Pages/Seasons-and-Bag-Limits.aspx",
		LicenseURL:      "https://dnr.maryland.gov/buy-apply/Pages/Hunting/default.aspx",
	},
	Seasons: map[string]map[string]string{
		"White-tailed Deer": {
			"Archery":                     "Sept 14, 2024 - Oct 31, 2024; Jan 1, 2025 - Jan 31, 2025",
			"Firearms (Varies by Region)": "Nov 16, 2024 - Dec 7, 2024",
			"Muzzleloader":                "Oct 19, 2024 - Oct 27, 2024; Dec 14, 2024 - Dec 22, 2024",
		},
		"Sika Deer": {
			"Archery":  "Sept 7, 2024 - Nov 30, 2024",
			"Firearms": "Oct 12, 2024 - Nov 30, 2024",
		},
		"Black Bear": {
			"Season": "Oct 21, 2024 - Oct 26, 2024 (Western Maryland only)",
		},
		"Wild Turkey": {
			"Fall":        "Oct 19, 2024 - Nov 2, 2024 (select counties)",
			"Spring 2025": "April 12, 2025 - May 20, 2025",
		},
		"Eastern Cottontail Rabbit": {
			"Season": "Nov 2, 2024 - Feb 15, 2025",
		},
		"Gray Squirrel": {
			"Season": "Sept 7, 2024 - Feb 28, 2025",
		},
		"Raccoon": {
			"Season": "Oct 11, 2024 - Feb 15, 2025",
		},
		"Woodcock": {
			"Season": "Nov 16, 2024 - Jan 31, 2025",
		},
		"Dove": {
			"Season": "Sept 1, 2024 - Oct 5, 2024",
		},
	},
	Licenses: map[string]string{
		"Resident Hunting License":                "$24.50",
		"Non-Resident Hunting License":            "$120.50",
		"Junior Hunting License (16-17)":          "$7.50",
		"Deer Stamp (required for deer hunting)":  "$5.00",
		"Migratory Game Bird Stamp":               "$5.00",
	},
	BagLimits: map[string]string{
		"White-tailed Deer":         "Varies by region: 1-2 antlered deer per season, up to 10 antlerless deer (with bonus stamps)",
		"Black Bear":                "1 per season",
		"Wild Turkey":               "2 per season (spring)",
		"Eastern Cottontail Rabbit": "No daily limit",
		"Gray Squirrel":             "No daily limit",
		"Raccoon":                   "No daily limit",
		"Dove":                      "15 per day",
	},
	LegalHours: "30 minutes before sunrise to 30 minutes after sunset (varies by species)",
	Weapons: map[string]string{
		"Archery":  "Longbows, recurve bows, compound bows (30+ lb draw)",
		"Firearms": "Shotguns (20 gauge+), rifles (.243 caliber+), muzzleloaders",
		"Note":     "Specific weapon restrictions vary by region and season. Check DNR website for details.",
	},
}

var pennsylvaniaRegulations = types.StateRegulations{
	State:       "PA",
	StateName:   "Pennsylvania",
	LastUpdated: "2024-10-04",
	Source: types.RegulationSource{
		Name:            "Pennsylvania Game Commission",
		HuntingGuideURL: "https://www.pgc.pa.gov/HuntTrap/Law/Pages/Seasons-and-Bag-Limits.aspx",
		LicenseURL:      "https://www.pgc.pa.gov/HuntTrap/Licenses/Pages/default.aspx",
	},
	Seasons: map[string]map[string]string{
		"White-tailed Deer": {
			"Archery":      "Sept 16, 2024 - Nov 9, 2024; Dec 26, 2024 - Jan 18, 2025",
			"Firearms":     "Nov 30, 2024 - Dec 14, 2024",
			"Muzzleloader": "Oct 19, 2024 - Oct 26, 2024",
		},
		"Black Bear": {
			"Archery":  "Sept 16, 2024 - Nov 9, 2024",
			"Firearms": "Nov 23, 2024 - Nov 27, 2024",
		},
		"Wild Turkey": {
			"Fall":        "Oct 26, 2024 - Nov 23, 2024",
			"Spring 2025": "Late April - Late May 2025",
		},
	},
	Licenses: map[string]string{
		"Resident Hunting License":     "$20.97",
		"Non-Resident Hunting License": "$101.97",
		"Antlerless Deer License":      "$6.97",
	},
	BagLimits: map[string]string{
		"White-tailed Deer": "1 antlered per season, antlerless varies by license",
		"Black Bear":        "1 per season",
		"Wild Turkey":       "2 per season (fall)",
	},
	LegalHours: "30 minutes before sunrise to 30 minutes after sunset",
	Weapons: map[string]string{
		"Archery":  "Bows with 35+ lb draw",
		"Firearms": "Centerfire rifles, shotguns, muzzleloaders",
	},
}

func seededRegulations() map[string]types.StateRegulations {
	return map[string]types.StateRegulations{
		"MD": marylandRegulations,
		"PA": pennsylvaniaRegulations,
	}
}
