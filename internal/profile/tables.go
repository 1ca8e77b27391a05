package profile

// ArchetypeGoals maps a work-style archetype to its three goal skills, in
// priority order.
var ArchetypeGoals = map[string][]string{
	"analyst":    {"data-storytelling", "assertiveness", "empathy"},
	"driver":     {"empathy", "active-listening", "delegation"},
	"expressive": {"active-listening", "emotional-regulation", "strategic-thinking"},
	"amiable":    {"assertiveness", "conflict-resolution", "difficult-conversations"},
	"strategist": {"influence", "negotiation", "coaching"},
	"connector":  {"feedback-delivery", "negotiation", "clear-expression"},
}

// DefaultGoals apply when the archetype is missing or not in ArchetypeGoals.
var DefaultGoals = []string{"active-listening", "clear-expression"}

// UnknownArchetype is reported for records without an archetype.
const UnknownArchetype = "unknown"

// RefreshThresholds is the number of days without practice after which a
// skill at the given level needs a refresh.
var RefreshThresholds = map[Level]int{
	LevelDeveloping: 14,
	LevelCompetent:  30,
	LevelMastered:   60,
}

// ScoreLevel is one row of the growth-area score to level mapping.
type ScoreLevel struct {
	MinScore float64
	Level    Level
}

// ScoreLevels is checked top to bottom; the first row whose MinScore the
// score reaches wins. Scores below every row seed nothing.
var ScoreLevels = []ScoreLevel{
	{8, LevelMastered},
	{6, LevelCompetent},
	{3, LevelDeveloping},
}

// PaceWindowWeeks is the period completed scenarios are assumed to span.
const PaceWindowWeeks = 4

// PaceThreshold is one row of the weekly-rate to pace mapping.
type PaceThreshold struct {
	AboveWeekly float64
	Pace        Pace
}

// PaceThresholds is checked top to bottom; a rate at or below every row is
// PaceThorough.
var PaceThresholds = []PaceThreshold{
	{3, PaceFast},
	{1, PaceModerate},
}

// HandsOnScenarioCount is the completed-scenario count above which the
// learner is assumed to prefer hands-on practice.
const HandsOnScenarioCount = 5

const (
	// ScenarioConfidenceStep is the confidence earned per completed related
	// scenario.
	ScenarioConfidenceStep = 20
	// ScenarioConfidenceCap bounds confidence earned from scenarios alone.
	ScenarioConfidenceCap = 60
)

const (
	StrengthMinScore  = 7.0
	ChallengeMaxScore = 5.0
	MaxFocusAreas     = 3
)
