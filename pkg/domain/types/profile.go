package types

// ExposureLevel represents the public exposure of the assessed subject
type ExposureLevel string

const (
	ExposureNone        ExposureLevel = "none"
	ExposureMinimal     ExposureLevel = "minimal"
	ExposureModerate    ExposureLevel = "moderate"
	ExposureSignificant ExposureLevel = "significant"
	ExposureExtensive   ExposureLevel = "extensive"
)

// AllExposureLevels returns all valid exposure levels
func AllExposureLevels() []ExposureLevel {
	return []ExposureLevel{
		ExposureNone,
		ExposureMinimal,
		ExposureModerate,
		ExposureSignificant,
		ExposureExtensive,
	}
}

// IsValid checks if the exposure level is valid
func (e ExposureLevel) IsValid() bool {
	switch e {
	case ExposureNone,
		ExposureMinimal,
		ExposureModerate,
		ExposureSignificant,
		ExposureExtensive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the exposure level
func (e ExposureLevel) String() string {
	return string(e)
}

// TravelFrequency represents how often the subject travels
type TravelFrequency string

const (
	TravelNone       TravelFrequency = "none"
	TravelRare       TravelFrequency = "rare"
	TravelOccasional TravelFrequency = "occasional"
	TravelFrequent   TravelFrequency = "frequent"
	TravelConstant   TravelFrequency = "constant"
)

// AllTravelFrequencies returns all valid travel frequencies
func AllTravelFrequencies() []TravelFrequency {
	return []TravelFrequency{
		TravelNone,
		TravelRare,
		TravelOccasional,
		TravelFrequent,
		TravelConstant,
	}
}

// IsValid checks if the travel frequency is valid
func (t TravelFrequency) IsValid() bool {
	switch t {
	case TravelNone,
		TravelRare,
		TravelOccasional,
		TravelFrequent,
		TravelConstant:
		return true
	default:
		return false
	}
}

// String returns the string representation of the travel frequency
func (t TravelFrequency) String() string {
	return string(t)
}
