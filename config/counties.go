package config

// MetroTier classifies a county's metropolitan status.
type MetroTier int

const (
	MetroTierNone MetroTier = 0
	MetroTier1    MetroTier = 1
	MetroTier2    MetroTier = 2
)

// EconomicDiversity levels used by the metro county table.
const (
	DiversityMedium   = "medium"
	DiversityHigh     = "high"
	DiversityVeryHigh = "very_high"
)

// MetroCounty holds baseline characteristics of a metropolitan county.
type MetroCounty struct {
	Tier              MetroTier
	PopulationTier    string
	EconomicDiversity string
}

// MetroCounties lists Alabama counties that belong to a metropolitan area.
var MetroCounties = map[string]MetroCounty{
	// Birmingham Metro
	"Jefferson": {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityHigh},
	"Shelby":    {Tier: MetroTier1, PopulationTier: "medium", EconomicDiversity: DiversityHigh},
	"St. Clair": {Tier: MetroTier2, PopulationTier: "small", EconomicDiversity: DiversityMedium},
	"Blount":    {Tier: MetroTier2, PopulationTier: "small", EconomicDiversity: DiversityMedium},

	// Huntsville Metro (tech hub)
	"Madison":   {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityVeryHigh},
	"Limestone": {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityHigh},
	"Morgan":    {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityMedium},

	// Mobile Metro (port city)
	"Mobile":  {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityHigh},
	"Baldwin": {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityHigh},

	// Montgomery Metro (capital)
	"Montgomery": {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityHigh},
	"Elmore":     {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityMedium},
	"Autauga":    {Tier: MetroTier2, PopulationTier: "small", EconomicDiversity: DiversityMedium},

	// Tuscaloosa Metro (university)
	"Tuscaloosa": {Tier: MetroTier1, PopulationTier: "large", EconomicDiversity: DiversityHigh},

	// Auburn-Opelika Metro
	"Lee": {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityHigh},

	// Florence-Muscle Shoals Metro
	"Lauderdale": {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityMedium},
	"Colbert":    {Tier: MetroTier2, PopulationTier: "small", EconomicDiversity: DiversityMedium},

	// Gadsden Metro
	"Etowah": {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityMedium},

	// Anniston-Oxford Metro
	"Calhoun": {Tier: MetroTier2, PopulationTier: "medium", EconomicDiversity: DiversityMedium},
}

// Water feature quality levels used by the natural feature table.
const (
	WaterLow         = "low"
	WaterMedium      = "medium"
	WaterHigh        = "high"
	WaterExceptional = "exceptional"
)

// NaturalFeatures holds a county's natural feature profile.
type NaturalFeatures struct {
	WaterFeatures string
	Recreation    string
	Tourism       string
}

// NaturalFeatureCounties lists counties with significant natural features.
var NaturalFeatureCounties = map[string]NaturalFeatures{
	// Gulf Coast
	"Baldwin": {WaterFeatures: WaterExceptional, Recreation: "very_high", Tourism: "high"},
	"Mobile":  {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},

	// Tennessee River Valley
	"Madison":    {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Limestone":  {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Lauderdale": {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Morgan":     {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Marshall":   {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Jackson":    {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "low"},

	// Appalachian foothills
	"DeKalb":   {WaterFeatures: WaterMedium, Recreation: "high", Tourism: "medium"},
	"Cherokee": {WaterFeatures: WaterMedium, Recreation: "high", Tourism: "medium"},
	"Etowah":   {WaterFeatures: WaterMedium, Recreation: "medium", Tourism: "low"},

	// Black Belt region
	"Dallas":  {WaterFeatures: WaterLow, Recreation: "low", Tourism: "historical"},
	"Marengo": {WaterFeatures: WaterLow, Recreation: "low", Tourism: "historical"},
	"Perry":   {WaterFeatures: WaterLow, Recreation: "low", Tourism: "historical"},

	// Central Alabama lakes
	"Coosa":      {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Tallapoosa": {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
	"Elmore":     {WaterFeatures: WaterHigh, Recreation: "high", Tourism: "medium"},
}

// TransportationCorridors maps named corridors to their member counties.
var TransportationCorridors = map[string][]string{
	// Interstate 65 corridor (north-south)
	"I65": {"Mobile", "Baldwin", "Monroe", "Butler", "Crenshaw", "Montgomery",
		"Autauga", "Chilton", "Shelby", "Jefferson", "Blount", "Cullman", "Morgan", "Limestone"},

	// Interstate 20/59 corridor (east-west)
	"I20": {"Tuscaloosa", "Jefferson", "St. Clair", "Calhoun", "Cleburne"},

	// Interstate 85 corridor (northeast)
	"I85": {"Montgomery", "Macon", "Lee", "Chambers"},

	// US Highway 231 corridor
	"US231": {"Houston", "Dale", "Coffee", "Pike", "Montgomery"},

	// Tennessee River ports
	"River_Access": {"Lauderdale", "Colbert", "Morgan", "Marshall", "Jackson", "Madison", "Limestone"},

	// Port of Mobile access
	"Port_Access": {"Mobile", "Baldwin", "Monroe", "Clarke", "Washington"},
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// MajorCities lists major Alabama cities with approximate coordinates.
var MajorCities = map[string]Coordinate{
	"Birmingham": {33.5186, -86.8104},
	"Montgomery": {32.3792, -86.3077},
	"Mobile":     {30.6954, -88.0399},
	"Huntsville": {34.7304, -86.5861},
	"Tuscaloosa": {33.2098, -87.5692},
	"Auburn":     {32.6099, -85.4808},
	"Dothan":     {31.2232, -85.3905},
	"Florence":   {34.7998, -87.6773},
	"Gadsden":    {34.0143, -86.0066},
	"Anniston":   {33.6598, -85.8316},
}

// CountyCoordinates lists approximate county seat coordinates for all 67
// Alabama counties. Membership in this table defines a known county.
var CountyCoordinates = map[string]Coordinate{
	"Autauga": {32.5246, -86.6441}, "Baldwin": {30.7266, -87.7286},
	"Barbour": {31.8593, -85.3873}, "Bibb": {33.0232, -87.1253},
	"Blount": {33.9809, -86.5669}, "Bullock": {32.1079, -85.7164},
	"Butler": {31.7540, -86.6836}, "Calhoun": {33.7709, -85.8269},
	"Chambers": {32.9079, -85.4269}, "Cherokee": {34.2609, -85.6408},
	"Chilton": {32.8409, -86.7408}, "Choctaw": {32.0409, -88.2408},
	"Clarke": {31.5409, -87.8408}, "Clay": {33.2709, -85.8908},
	"Cleburne": {33.6709, -85.5408}, "Coffee": {31.4609, -85.9908},
	"Colbert": {34.6309, -87.7908}, "Conecuh": {31.4309, -86.8908},
	"Coosa": {32.9009, -86.3408}, "Covington": {31.3009, -86.4408},
	"Crenshaw": {31.7409, -86.3008}, "Cullman": {34.1809, -86.8408},
	"Dale": {31.5009, -85.6408}, "Dallas": {32.4409, -87.0408},
	"DeKalb": {34.4709, -85.7908}, "Elmore": {32.5909, -86.0908},
	"Escambia": {31.0909, -87.0908}, "Etowah": {34.0109, -86.0408},
	"Fayette": {33.7009, -87.8408}, "Franklin": {34.3109, -87.6908},
	"Geneva": {31.0409, -85.8908}, "Greene": {32.8609, -87.8908},
	"Hale": {32.7909, -87.6408}, "Henry": {31.3509, -85.1908},
	"Houston": {31.2209, -85.3908}, "Jackson": {34.8709, -85.8408},
	"Jefferson": {33.5209, -86.8108}, "Lamar": {33.6709, -88.0908},
	"Lauderdale": {34.8209, -87.6908}, "Lawrence": {34.5309, -87.3408},
	"Lee": {32.6109, -85.4808}, "Limestone": {34.8009, -86.9908},
	"Lowndes": {32.1509, -86.6408}, "Macon": {32.4409, -85.7008},
	"Madison": {34.7309, -86.5908}, "Marengo": {32.3109, -87.7908},
	"Marion": {34.1309, -87.9908}, "Marshall": {34.3509, -86.3608},
	"Mobile": {30.6909, -88.0408}, "Monroe": {31.5309, -87.3408},
	"Montgomery": {32.3809, -86.3108}, "Morgan": {34.4909, -86.9008},
	"Perry": {32.6509, -87.2908}, "Pickens": {33.2309, -88.2708},
	"Pike": {31.8409, -85.9908}, "Randolph": {33.3109, -85.5408},
	"Russell": {32.3509, -85.1008}, "St. Clair": {33.8109, -86.3008},
	"Shelby": {33.1509, -86.5808}, "Sumter": {32.5609, -88.1408},
	"Talladega": {33.4309, -86.1008}, "Tallapoosa": {32.9609, -85.8908},
	"Tuscaloosa": {33.2109, -87.5708}, "Walker": {33.7909, -87.2908},
	"Washington": {31.4509, -88.1908}, "Wilcox": {31.9909, -87.2408},
	"Winston": {34.1109, -87.1908},
}

// Special-case county groups used by the economic and timing scoring.
var (
	TechHubCounties           = []string{"Madison", "Limestone"}
	PortCounties              = []string{"Mobile", "Baldwin"}
	UniversityCounties        = []string{"Tuscaloosa", "Lee", "Jefferson"}
	GovernmentCounties        = []string{"Montgomery", "Madison"}
	StrongJobCounties         = []string{"Madison", "Jefferson", "Shelby"}
	HighGrowthCounties        = []string{"Baldwin", "Madison", "Shelby", "Lee", "Limestone", "Elmore", "Autauga"}
	MediumGrowthCounties      = []string{"Mobile", "Tuscaloosa", "St. Clair", "Morgan"}
	GulfClimateCounties       = []string{"Baldwin", "Mobile"}
	ModerateClimateCounties   = []string{"Madison", "Jefferson", "Tuscaloosa"}
	HighDevelopmentCounties   = []string{"Baldwin", "Shelby", "Madison", "Lee", "Elmore"}
	MediumDevelopmentCounties = []string{"Limestone", "St. Clair", "Autauga", "Morgan"}
	HighMomentumCounties      = []string{"Madison", "Baldwin", "Shelby", "Lee"}
	MediumMomentumCounties    = []string{"Jefferson", "Mobile", "Tuscaloosa"}
	InfrastructureCounties    = []string{"Baldwin", "Madison", "Mobile"}
)

// KnownCounty reports whether the county name appears in the coordinate table.
func KnownCounty(name string) bool {
	_, ok := CountyCoordinates[name]
	return ok
}

// CountyNames returns every county in the coordinate table.
func CountyNames() []string {
	names := make([]string, 0, len(CountyCoordinates))
	for name := range CountyCoordinates {
		names = append(names, name)
	}
	return names
}
