package ranking

// educationCompatibility maps a questionnaire education level to the degree
// types it can feed into.
var educationCompatibility = map[string][]string{
	"grade12":    {"BTech", "BE", "BSc", "BCom", "BA", "BBA", "BCA"},
	"diploma":    {"BTech", "BE", "BSc", "BCA", "Diploma"},
	"equivalent": {"BTech", "BE", "BSc", "BCom", "BA", "BBA", "BCA"},
}

// streamAliases expands a questionnaire stream into the requirement labels
// universities use. "Any Stream" is the universal wildcard on both sides.
var streamAliases = map[string][]string{
	"science":     {"Science (PCM)", "Science (PCB)", "Science", "Any Stream"},
	"commerce":    {"Commerce", "Any Stream"},
	"arts":        {"Arts", "Any Stream"},
	"vocational":  {"Any Stream"},
	"engineering": {"Science (PCM)", "Science", "Any Stream"},
	"medical":     {"Science (PCB)", "Science", "Any Stream"},
}

// budgetBrackets binds the questionnaire budget labels to annual-fee ranges
// in rupees. An unknown label is treated as no budget constraint.
var budgetBrackets = map[string][2]float64{
	"under-1lakh": {0, 100000},
	"1-3lakh":     {100000, 300000},
	"3-5lakh":     {300000, 500000},
	"5-10lakh":    {500000, 1000000},
	"above-10lakh": {1000000, maxFee},
}

const maxFee = 1 << 40
