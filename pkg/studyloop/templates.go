package studyloop

// followUpTemplate describes one follow-up prompt and the structural groups
// its phrasing demands (e.g. an enumeration or a reasoning connective).
type followUpTemplate struct {
	question  string
	structure []KeywordGroup
}

var genericTemplate = followUpTemplate{
	question: "In one or two sentences, restate the main idea in your own words.",
}

var enumerationStructure = []KeywordGroup{
	{"1", "first", "one"},
	{"2", "second", "two"},
	{"3", "third", "three"},
}

var reasoningStructure = []KeywordGroup{
	{"because", "therefore", "so that", "since"},
}

// Templates keyed by (subject, topic). Checked before the (subject, qtype)
// table; data lives here rather than in branching code so new subjects only
// touch these maps.
var topicTemplates = map[string]map[TopicID]followUpTemplate{
	"Biology": {
		TopicOsmosis: {
			question:  "Explain osmosis in your own words, mentioning the membrane and the direction water moves.",
			structure: reasoningStructure,
		},
		TopicPhotosynthesis: {
			question:  "State what photosynthesis needs and what it produces.",
			structure: nil,
		},
		TopicRespiration: {
			question:  "In your own words, say why respiration matters to a living cell.",
			structure: reasoningStructure,
		},
		TopicGenetics: {
			question:  "Explain in one sentence how a trait passes from parent to offspring.",
			structure: reasoningStructure,
		},
	},
	"Chemistry": {
		TopicAcidsBases: {
			question:  "Give one property of an acid and one of a base, with an example of each.",
			structure: nil,
		},
		TopicRedox: {
			question:  "In your own words, state what happens to electrons in oxidation and in reduction.",
			structure: nil,
		},
	},
	"Physics": {
		TopicElectricity: {
			question:  "State the relationship between current, voltage and resistance, and name its unit.",
			structure: nil,
		},
		TopicForces: {
			question:  "State Newton's second law in your own words and give its formula.",
			structure: nil,
		},
	},
	"Geography": {
		TopicErosion: {
			question:  "List three causes of soil erosion: 1, 2, 3.",
			structure: enumerationStructure,
		},
	},
	"Civics": {
		TopicHumanRights: {
			question:  "Name three rights protected by the constitution: 1, 2, 3.",
			structure: enumerationStructure,
		},
	},
}

// Templates keyed by (subject, question type). Fallback when no topic
// template applies; the generic restatement template is the last resort.
var qtypeTemplates = map[string]map[QType]followUpTemplate{
	"Biology": {
		QTypeDefinition: {
			question:  "Define the term again in your own words and give one example.",
			structure: nil,
		},
		QTypeCompare: {
			question:  "Give one similarity and one difference, in your own words.",
			structure: nil,
		},
	},
	"Basic Mathematics": {
		QTypeCalculation: {
			question:  "Describe the steps you would follow to solve a similar problem: 1, 2, 3.",
			structure: enumerationStructure,
		},
	},
	"History": {
		QTypeEssay: {
			question:  "Give three points you would use in this essay: 1, 2, 3.",
			structure: enumerationStructure,
		},
		QTypeExplain: {
			question:  "In two sentences, explain the main cause and its effect, using 'because'.",
			structure: reasoningStructure,
		},
	},
	"English": {
		QTypeDefinition: {
			question:  "Use the term correctly in a sentence of your own.",
			structure: nil,
		},
	},
}

func lookupTemplate(subject string, topic TopicID, qtype QType) followUpTemplate {
	if topic != TopicGeneral {
		if byTopic, ok := topicTemplates[subject]; ok {
			if tpl, ok := byTopic[topic]; ok {
				return tpl
			}
		}
	}
	if byQType, ok := qtypeTemplates[subject]; ok {
		if tpl, ok := byQType[qtype]; ok {
			return tpl
		}
	}
	return genericTemplate
}

// Topic-specific keyword banks: the sharper answer keys used when the topic
// detector fires. Group members are interchangeable synonyms.
var topicKeywordBanks = map[string]map[TopicID][]KeywordGroup{
	"Biology": {
		TopicOsmosis: {
			{"water"},
			{"membrane", "semi-permeable", "semipermeable", "partially permeable"},
			{"concentration", "concentrated", "dilute"},
			{"moves", "movement", "passes", "diffuses"},
		},
		TopicPhotosynthesis: {
			{"light", "sunlight"},
			{"chlorophyll", "chloroplast"},
			{"carbon dioxide", "co2"},
			{"glucose", "sugar", "starch"},
			{"oxygen"},
		},
		TopicRespiration: {
			{"energy", "atp"},
			{"glucose", "sugar"},
			{"oxygen"},
			{"carbon dioxide", "co2"},
		},
		TopicDiffusion: {
			{"high", "higher"},
			{"low", "lower"},
			{"concentration"},
			{"particles", "molecules"},
		},
		TopicCellStructure: {
			{"nucleus"},
			{"membrane"},
			{"cytoplasm"},
		},
		TopicGenetics: {
			{"gene", "genes", "dna"},
			{"parent", "parents"},
			{"offspring", "child", "children"},
			{"dominant", "recessive"},
		},
	},
	"Chemistry": {
		TopicAcidsBases: {
			{"hydrogen", "h+"},
			{"ph"},
			{"sour", "bitter"},
			{"neutralise", "neutralize", "neutralisation", "neutralization"},
		},
		TopicRedox: {
			{"electron", "electrons"},
			{"loss", "loses", "losing"},
			{"gain", "gains", "gaining"},
		},
		TopicElectrolysis: {
			{"electrode", "anode", "cathode"},
			{"ion", "ions"},
			{"current", "electricity"},
		},
		TopicBonding: {
			{"electron", "electrons"},
			{"share", "shared", "sharing"},
			{"transfer", "transferred"},
		},
	},
	"Physics": {
		TopicElectricity: {
			{"current", "ampere", "amp"},
			{"voltage", "volt", "potential difference"},
			{"resistance", "ohm"},
		},
		TopicForces: {
			{"force", "newton"},
			{"mass"},
			{"acceleration"},
		},
		TopicEnergy: {
			{"joule", "energy"},
			{"kinetic", "potential"},
			{"transferred", "converted", "transformed"},
		},
		TopicPressure: {
			{"force"},
			{"area"},
			{"pascal", "n/m"},
		},
		TopicWaves: {
			{"frequency", "hertz"},
			{"wavelength"},
			{"amplitude"},
		},
	},
	"Basic Mathematics": {
		TopicAlgebra: {
			{"variable", "unknown", "x"},
			{"solve", "solution"},
			{"equation"},
		},
		TopicStatistics: {
			{"mean", "average"},
			{"data"},
			{"frequency"},
		},
		TopicGeometry: {
			{"angle", "degrees"},
			{"formula"},
			{"units", "cm", "m"},
		},
		TopicTrigonometry: {
			{"ratio"},
			{"opposite", "adjacent", "hypotenuse"},
			{"angle"},
		},
	},
	"Geography": {
		TopicErosion: {
			{"soil"},
			{"water", "rain", "wind"},
			{"vegetation", "deforestation", "overgrazing"},
		},
		TopicClimate: {
			{"temperature"},
			{"rainfall", "precipitation"},
			{"season", "seasons"},
		},
		TopicPopulation: {
			{"birth", "births"},
			{"death", "deaths", "mortality"},
			{"migration", "migrate"},
		},
	},
	"History": {
		TopicColonialism: {
			{"european", "europeans", "british", "german"},
			{"resources", "raw materials", "land"},
			{"resistance", "rebellion"},
		},
		TopicIndependence: {
			{"nationalism", "nationalist"},
			{"party", "movement", "tanu"},
			{"freedom", "uhuru", "independence"},
		},
	},
	"Civics": {
		TopicDemocracy: {
			{"people", "citizens"},
			{"vote", "election", "elections"},
			{"leaders", "representatives", "government"},
		},
		TopicHumanRights: {
			{"life"},
			{"education"},
			{"expression", "speech", "opinion"},
		},
	},
	"English": {
		TopicTenses: {
			{"past", "present", "future"},
			{"verb"},
			{"time", "when"},
		},
		TopicPartsOfSpeech: {
			{"noun", "verb", "adjective"},
			{"sentence"},
			{"example"},
		},
	},
}

// Subject-general fallback banks keyed by question type. Used after the
// topic bank (or alone when the topic is general).
var subjectQTypeBanks = map[string]map[QType][]KeywordGroup{
	"Biology": {
		QTypeDefinition:  {{"process"}, {"cell", "organism", "living"}},
		QTypeExplain:     {{"because", "therefore"}, {"process"}},
		QTypeCompare:     {{"both"}, {"whereas", "while", "but"}},
		QTypeEssay:       {{"first", "1"}, {"example", "for example"}},
		QTypeCalculation: {{"formula"}, {"units"}},
		QTypeGeneral:     {{"example", "for example"}},
	},
	"Chemistry": {
		QTypeDefinition:  {{"reaction", "substance", "element", "compound"}},
		QTypeExplain:     {{"because", "therefore"}, {"reaction"}},
		QTypeCalculation: {{"mole", "mass", "formula"}, {"units"}},
		QTypeGeneral:     {{"example", "for example"}},
	},
	"Physics": {
		QTypeDefinition:  {{"unit", "units"}, {"quantity", "measure"}},
		QTypeExplain:     {{"because", "therefore"}, {"law", "principle"}},
		QTypeCalculation: {{"formula", "equation"}, {"units", "si unit"}},
		QTypeGeneral:     {{"example", "for example"}},
	},
	"Basic Mathematics": {
		QTypeCalculation: {{"step", "steps", "first"}, {"answer", "result"}},
		QTypeExplain:     {{"because", "therefore"}},
		QTypeGeneral:     {{"example", "for example"}},
	},
	"Geography": {
		QTypeDefinition: {{"process", "movement", "area"}},
		QTypeExplain:    {{"cause", "causes", "because"}, {"effect", "effects", "result"}},
		QTypeEssay:      {{"first", "1"}, {"example", "for example", "tanzania", "africa"}},
		QTypeGeneral:    {{"example", "for example"}},
	},
	"History": {
		QTypeDefinition: {{"period", "time", "century"}},
		QTypeExplain:    {{"cause", "causes", "because"}, {"outcome", "result", "effect"}},
		QTypeEssay:      {{"first", "1"}, {"evidence", "example"}},
		QTypeGeneral:    {{"example", "for example"}},
	},
	"Civics": {
		QTypeDefinition: {{"citizen", "citizens", "society", "state"}},
		QTypeExplain:    {{"right", "rights", "responsibility", "responsibilities"}, {"because", "therefore"}},
		QTypeGeneral:    {{"example", "for example"}},
	},
	"English": {
		QTypeDefinition: {{"means", "meaning"}, {"example", "for example"}},
		QTypeExplain:    {{"because", "therefore"}},
		QTypeGeneral:    {{"example", "for example"}},
	},
	"French": {
		QTypeGeneral: {{"example", "par exemple", "for example"}},
	},
	"Arabic": {
		QTypeGeneral: {{"example", "for example"}},
	},
}

func topicBank(subject string, topic TopicID) []KeywordGroup {
	if banks, ok := topicKeywordBanks[subject]; ok {
		return banks[topic]
	}
	return nil
}

func subjectBank(subject string, qtype QType) []KeywordGroup {
	banks, ok := subjectQTypeBanks[subject]
	if !ok {
		return nil
	}
	if groups, ok := banks[qtype]; ok {
		return groups
	}
	return banks[QTypeGeneral]
}
