package studyloop

// Topic tags per subject. Only topics with a dedicated keyword bank get a
// constant; everything else resolves to TopicGeneral.
const (
	// Biology
	TopicOsmosis        TopicID = "osmosis"
	TopicPhotosynthesis TopicID = "photosynthesis"
	TopicRespiration    TopicID = "respiration"
	TopicDiffusion      TopicID = "diffusion"
	TopicCellStructure  TopicID = "cell_structure"
	TopicGenetics       TopicID = "genetics"

	// Chemistry
	TopicAcidsBases   TopicID = "acids_bases"
	TopicRedox        TopicID = "redox"
	TopicBonding      TopicID = "bonding"
	TopicElectrolysis TopicID = "electrolysis"

	// Physics
	TopicElectricity TopicID = "electricity"
	TopicForces      TopicID = "forces_motion"
	TopicEnergy      TopicID = "energy"
	TopicPressure    TopicID = "pressure"
	TopicWaves       TopicID = "waves"

	// Basic Mathematics
	TopicAlgebra      TopicID = "algebra"
	TopicGeometry     TopicID = "geometry"
	TopicStatistics   TopicID = "statistics"
	TopicTrigonometry TopicID = "trigonometry"

	// Geography
	TopicErosion    TopicID = "erosion"
	TopicClimate    TopicID = "climate"
	TopicPopulation TopicID = "population"

	// History
	TopicColonialism  TopicID = "colonialism"
	TopicIndependence TopicID = "independence"

	// Civics
	TopicDemocracy   TopicID = "democracy"
	TopicHumanRights TopicID = "human_rights"

	// English
	TopicTenses       TopicID = "tenses"
	TopicPartsOfSpeech TopicID = "parts_of_speech"
)

type topicTrigger struct {
	topic    TopicID
	triggers []string
}

// Ordered per subject: the first trigger found in the question wins. Broad
// triggers ("cell") come after the narrower ones that contain them.
var topicTable = map[string][]topicTrigger{
	"Biology": {
		{TopicOsmosis, []string{"osmosis"}},
		{TopicPhotosynthesis, []string{"photosynthesis"}},
		{TopicRespiration, []string{"respiration", "respire"}},
		{TopicDiffusion, []string{"diffusion", "diffuse"}},
		{TopicGenetics, []string{"genetic", "inherit", "heredity", "dna", "chromosome"}},
		{TopicCellStructure, []string{"cell structure", "organelle", "mitochondria", "nucleus", "cell"}},
	},
	"Chemistry": {
		{TopicAcidsBases, []string{"acid", "base", "alkali", "ph "}},
		{TopicRedox, []string{"oxidation", "reduction", "redox"}},
		{TopicElectrolysis, []string{"electrolysis", "electrolyte"}},
		{TopicBonding, []string{"bonding", "covalent", "ionic bond", "bond"}},
	},
	"Physics": {
		{TopicElectricity, []string{"current", "voltage", "resistance", "ohm", "circuit", "electricity"}},
		{TopicForces, []string{"newton", "force", "acceleration", "velocity", "motion"}},
		{TopicPressure, []string{"pressure", "pascal"}},
		{TopicWaves, []string{"wave", "frequency", "wavelength", "sound", "light ray"}},
		{TopicEnergy, []string{"energy", "work done", "power"}},
	},
	"Basic Mathematics": {
		{TopicAlgebra, []string{"equation", "quadratic", "algebra", "factorise", "factorize", "simultaneous"}},
		{TopicTrigonometry, []string{"sine", "cosine", "tangent", "trigonometry", "sin ", "cos ", "tan "}},
		{TopicStatistics, []string{"mean", "median", "mode", "probability", "statistics", "frequency table"}},
		{TopicGeometry, []string{"triangle", "circle", "angle", "area", "perimeter", "volume", "geometry"}},
	},
	"Geography": {
		{TopicErosion, []string{"erosion", "weathering", "soil degradation"}},
		{TopicClimate, []string{"climate", "rainfall", "weather", "monsoon"}},
		{TopicPopulation, []string{"population", "migration", "birth rate", "death rate"}},
	},
	"History": {
		{TopicColonialism, []string{"colonial", "colonialism", "scramble for africa", "imperialism"}},
		{TopicIndependence, []string{"independence", "nationalism", "uhuru", "liberation"}},
	},
	"Civics": {
		{TopicDemocracy, []string{"democracy", "election", "government", "parliament"}},
		{TopicHumanRights, []string{"human rights", "rights", "freedom", "constitution"}},
	},
	"English": {
		{TopicTenses, []string{"tense", "past simple", "present perfect", "future"}},
		{TopicPartsOfSpeech, []string{"noun", "verb", "adjective", "adverb", "parts of speech", "pronoun"}},
	},
}

// DetectTopic narrows a question to a subject-scoped topic. It only selects
// which keyword bank the follow-up generator uses downstream; it has no
// effect on the tutor's main answer. Unmatched questions (and subjects with
// no trigger table) resolve to TopicGeneral.
func DetectTopic(subject, question string) TopicID {
	triggers, ok := topicTable[subject]
	if !ok {
		return TopicGeneral
	}
	text := normalizeForMatch(question)
	for _, entry := range triggers {
		if containsAny(text, entry.triggers) {
			return entry.topic
		}
	}
	return TopicGeneral
}
