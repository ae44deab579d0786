package catalog

import "github.com/aegis-sec/aegis/pkg/domain/types"

// Divisor constants for the two scoring models. The four-factor ceiling is
// 50; the three-factor ceiling is 125 (25 x 5 with treatment adjustments).
const (
	DivisorFourFactor  = 50
	DivisorThreeFactor = 125
)

// NewBuiltinRegistry returns a registry populated with the built-in
// executive-protection and facility catalogs
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.Register(BuiltinExecutiveProtection())
	r.Register(BuiltinFacility())
	return r
}

// BuiltinExecutiveProtection returns the person-centric four-factor catalog
func BuiltinExecutiveProtection() *Catalog {
	return &Catalog{
		Template:   types.TemplateExecutiveProtection,
		Version:    "2026.1",
		FourFactor: true,
		Divisor:    DivisorFourFactor,
		Threats: []ThreatDefinition{
			{ID: "kidnapping", Name: "Kidnapping / Abduction", Category: "Targeted Violence", BaseWeight: 1.5},
			{ID: "targeted-attack", Name: "Targeted Physical Attack", Category: "Targeted Violence", BaseWeight: 1.5},
			{ID: "stalking", Name: "Stalking / Fixated Persons", Category: "Targeted Violence", BaseWeight: 1.2},
			{ID: "home-invasion", Name: "Home Invasion", Category: "Residential", BaseWeight: 1.3},
			{ID: "travel-incident", Name: "Travel Security Incident", Category: "Mobility", BaseWeight: 1.0},
			{ID: "cyber-enabled-threat", Name: "Cyber-Enabled Physical Threat", Category: "Digital", BaseWeight: 1.0},
			{ID: "reputational-extortion", Name: "Extortion / Blackmail", Category: "Digital", BaseWeight: 0.9},
			{ID: "insider-threat", Name: "Household / Staff Insider Threat", Category: "Personnel", BaseWeight: 1.1},
		},
		Sections: []Section{
			{
				ID: "profile", Name: "Public Profile",
				Questions: []types.QuestionID{
					"public-profile-level", "net-worth-bracket", "media-presence",
					"social-media-activity", "public-speaking", "board-memberships",
					"philanthropic-visibility", "controversial-affiliations",
				},
			},
			{
				ID: "family", Name: "Family & Household",
				Questions: []types.QuestionID{
					"family-composition", "family-security-awareness", "children-school-security",
					"family-social-media", "domestic-staff-count",
				},
			},
			{
				ID: "travel", Name: "Travel Pattern",
				Questions: []types.QuestionID{
					"travel-frequency", "high-risk-destinations", "travel-routine",
					"secure-transport", "travel-advance-team", "travel-booking-privacy",
				},
			},
			{
				ID: "residence", Name: "Residence",
				Questions: []types.QuestionID{
					"residence-type", "residence-perimeter-security", "residence-alarm-system",
					"residence-safe-room", "residence-cctv", "residence-access-control",
					"neighborhood-risk",
				},
			},
			{
				ID: "security-measures", Name: "Existing Security Measures",
				Questions: []types.QuestionID{
					"current-security-measures", "executive-protection-detail", "residential-security-team",
					"cyber-hygiene", "household-staff-vetting", "mail-screening",
					"emergency-plan", "medical-support",
				},
			},
			{
				ID: "threat-history", Name: "Threat History",
				Questions: []types.QuestionID{
					"threat-history", "active-adversary", "prior-incidents",
					"stalking-history", "litigation-disputes", "public-controversy",
				},
			},
		},
		Required: []types.QuestionID{
			"public-profile-level", "net-worth-bracket", "family-composition",
			"travel-frequency", "residence-type", "current-security-measures",
			"threat-history", "active-adversary",
		},
		Rules: []SignalRule{
			{
				QuestionID: "threat-history",
				BadAnswers: []string{"yes", "received", "ongoing", "credible"},
				Signal:     "Documented history of threats against the subject",
				Severity:   types.SeverityCriticalIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "targeted-attack", "stalking",
				},
			},
			{
				QuestionID: "active-adversary",
				BadAnswers: []string{"yes", "known", "suspected"},
				Signal:     "Known or suspected active adversary",
				Severity:   types.SeverityCriticalIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "targeted-attack", "home-invasion",
				},
			},
			{
				QuestionID: "stalking-history",
				BadAnswers: []string{"yes", "repeated", "fixated"},
				Signal:     "Prior stalking or fixated-person activity",
				Severity:   types.SeverityCriticalIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"stalking", "targeted-attack",
				},
			},
			{
				QuestionID: "public-profile-level",
				BadAnswers: []string{"celebrity", "very_high", "national", "international"},
				Signal:     "Subject maintains a very high public profile",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryExposure,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "stalking", "reputational-extortion",
				},
			},
			{
				QuestionID: "social-media-activity",
				BadAnswers: []string{"daily", "real-time", "location", "constant"},
				Signal:     "Real-time or location-revealing social media activity",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryExposure,
				AffectedThreats: []types.ThreatID{
					"stalking", "kidnapping", "cyber-enabled-threat",
				},
			},
			{
				QuestionID: "family-social-media",
				BadAnswers: []string{"unrestricted", "public", "frequent"},
				Signal:     "Family members expose movements on public social media",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryExposure,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "stalking", "home-invasion",
				},
			},
			{
				QuestionID: "travel-routine",
				BadAnswers: []string{"predictable", "same route", "fixed", "routine"},
				Signal:     "Predictable travel routes and routines",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "targeted-attack", "travel-incident",
				},
			},
			{
				QuestionID: "secure-transport",
				BadAnswers: []string{"no", "none", "self-drive", "rideshare"},
				Signal:     "No secure transport arrangements",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "travel-incident",
				},
			},
			{
				QuestionID: "residence-perimeter-security",
				BadAnswers: []string{"none", "minimal", "unfenced", "open"},
				Signal:     "Residence perimeter lacks meaningful security",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"home-invasion", "stalking",
				},
			},
			{
				QuestionID: "residence-alarm-system",
				BadAnswers: []string{"no", "none", "not monitored", "broken"},
				Signal:     "No monitored alarm system at the residence",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"home-invasion",
				},
			},
			{
				QuestionID: "household-staff-vetting",
				BadAnswers: []string{"no", "none", "never", "informal"},
				Signal:     "Household staff are not formally vetted",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"insider-threat", "home-invasion", "kidnapping",
				},
			},
			{
				QuestionID: "cyber-hygiene",
				BadAnswers: []string{"poor", "none", "shared", "reused"},
				Signal:     "Poor personal cyber hygiene",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"cyber-enabled-threat", "reputational-extortion",
				},
			},
			{
				QuestionID: "family-security-awareness",
				BadAnswers: []string{"low", "none", "untrained"},
				Signal:     "Family members lack basic security awareness",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "stalking", "home-invasion",
				},
			},
			{
				QuestionID: "high-risk-destinations",
				BadAnswers: []string{"yes", "frequent", "regular"},
				Signal:     "Regular travel to high-risk destinations",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryImpactAmplifier,
				AffectedThreats: []types.ThreatID{
					"kidnapping", "travel-incident",
				},
			},
			{
				QuestionID: "litigation-disputes",
				BadAnswers: []string{"yes", "active", "hostile"},
				Signal:     "Active hostile litigation or business disputes",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"targeted-attack", "reputational-extortion", "insider-threat",
				},
			},
		},
	}
}

// BuiltinFacility returns the facility three-factor catalog
func BuiltinFacility() *Catalog {
	return &Catalog{
		Template:   types.TemplateFacility,
		Version:    "2026.1",
		FourFactor: false,
		Divisor:    DivisorThreeFactor,
		Threats: []ThreatDefinition{
			{ID: "unauthorized-access", Name: "Unauthorized Access", Category: "Intrusion", BaseWeight: 1.2},
			{ID: "theft", Name: "Theft of Assets", Category: "Property", BaseWeight: 1.0},
			{ID: "workplace-violence", Name: "Workplace Violence", Category: "Personnel", BaseWeight: 1.4},
			{ID: "sabotage", Name: "Sabotage of Operations", Category: "Operational", BaseWeight: 1.1},
			{ID: "vandalism", Name: "Vandalism", Category: "Property", BaseWeight: 0.8},
			{ID: "bomb-threat", Name: "Bomb Threat / IED", Category: "External", BaseWeight: 1.3},
		},
		Sections: []Section{
			{
				ID: "facility-profile", Name: "Facility Profile",
				Questions: []types.QuestionID{
					"facility-type", "operating-hours", "visitor-volume",
					"asset-value", "tenant-profile", "site-location-risk",
				},
			},
			{
				ID: "perimeter", Name: "Perimeter Security",
				Questions: []types.QuestionID{
					"perimeter-fencing", "perimeter-lighting", "perimeter-cctv",
					"vehicle-barriers", "landscape-obstructions", "perimeter-patrols",
					"gate-control", "clear-zone",
				},
			},
			{
				ID: "access-control", Name: "Access Control",
				Questions: []types.QuestionID{
					"entry-point-count", "badge-system", "visitor-management",
					"tailgating-controls", "key-management", "loading-dock-control",
					"after-hours-access", "master-key-policy",
				},
			},
			{
				ID: "surveillance", Name: "Surveillance & Detection",
				Questions: []types.QuestionID{
					"cctv-coverage", "cctv-monitoring", "cctv-retention",
					"intrusion-detection", "alarm-response-time", "guard-force",
				},
			},
			{
				ID: "personnel", Name: "Personnel Security",
				Questions: []types.QuestionID{
					"background-checks", "security-training", "insider-reporting",
					"termination-procedures", "contractor-vetting", "security-staffing-level",
				},
			},
			{
				ID: "incident-history", Name: "Incident History",
				Questions: []types.QuestionID{
					"prior-break-ins", "prior-violence", "prior-thefts",
					"threat-reports", "neighborhood-crime-rate", "police-response-time",
				},
			},
		},
		Required: []types.QuestionID{
			"facility-type", "perimeter-fencing", "badge-system",
			"visitor-management", "cctv-coverage", "background-checks",
			"guard-force", "prior-break-ins",
		},
		Rules: []SignalRule{
			{
				QuestionID: "prior-break-ins",
				BadAnswers: []string{"yes", "multiple", "recent"},
				Signal:     "Facility has prior break-in history",
				Severity:   types.SeverityCriticalIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "theft",
				},
			},
			{
				QuestionID: "prior-violence",
				BadAnswers: []string{"yes", "incident", "assault"},
				Signal:     "Prior violence on site",
				Severity:   types.SeverityCriticalIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"workplace-violence",
				},
			},
			{
				QuestionID: "threat-reports",
				BadAnswers: []string{"yes", "received", "recent"},
				Signal:     "Threats reported against the facility or staff",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"workplace-violence", "bomb-threat", "sabotage",
				},
			},
			{
				QuestionID: "perimeter-fencing",
				BadAnswers: []string{"none", "partial", "damaged"},
				Signal:     "Perimeter fencing is absent or compromised",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "theft", "vandalism",
				},
			},
			{
				QuestionID: "perimeter-lighting",
				BadAnswers: []string{"none", "poor", "broken", "dark"},
				Signal:     "Inadequate perimeter lighting",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "vandalism",
				},
			},
			{
				QuestionID: "badge-system",
				BadAnswers: []string{"no", "none", "shared", "unenforced"},
				Signal:     "No enforced badge access system",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "theft", "sabotage",
				},
			},
			{
				QuestionID: "visitor-management",
				BadAnswers: []string{"no", "none", "informal", "paper"},
				Signal:     "Visitors are not formally managed or escorted",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "workplace-violence",
				},
			},
			{
				QuestionID: "cctv-coverage",
				BadAnswers: []string{"none", "partial", "blind spots", "broken"},
				Signal:     "CCTV coverage has gaps or is inoperative",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "theft", "vandalism",
				},
			},
			{
				QuestionID: "background-checks",
				BadAnswers: []string{"no", "none", "sometimes"},
				Signal:     "Employees are hired without background checks",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryVulnerability,
				AffectedThreats: []types.ThreatID{
					"theft", "sabotage", "workplace-violence",
				},
			},
			{
				QuestionID: "asset-value",
				BadAnswers: []string{"high", "critical", "irreplaceable"},
				Signal:     "High-value or irreplaceable assets on site",
				Severity:   types.SeverityConcern,
				Category:   types.SignalCategoryImpactAmplifier,
				AffectedThreats: []types.ThreatID{
					"theft", "sabotage",
				},
			},
			{
				QuestionID: "neighborhood-crime-rate",
				BadAnswers: []string{"high", "rising", "severe"},
				Signal:     "Facility sits in a high-crime area",
				Severity:   types.SeverityIndicator,
				Category:   types.SignalCategoryThreat,
				AffectedThreats: []types.ThreatID{
					"unauthorized-access", "theft", "vandalism",
				},
			},
		},
	}
}
