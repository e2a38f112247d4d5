package archetype

import "strings"

// Sector keyword sets, matched against the normalized sector label by exact
// membership. The lists are ported configuration data, not logic: they mirror
// the categories the intake questionnaire offers plus the free-text variants
// seen in production, normalized (lowercase, no diacritics).

var preRevenueSectors = keywordSet(
	"pre-revenue",
	"pre revenue",
	"deeptech",
	"deep tech",
	"biotech",
	"medtech",
	"amorcage",
	"recherche et developpement",
	"r&d",
)

var realEstateSectors = keywordSet(
	"immobilier",
	"agence immobiliere",
	"fonciere",
	"holding",
	"holding patrimoniale",
	"sci",
	"scpi",
	"marchand de biens",
)

var saasSectors = keywordSet(
	"saas",
	"logiciel saas",
	"editeur de logiciel",
	"editeur saas",
	"abonnement",
	"subscription software",
)

var marketplaceSectors = keywordSet(
	"marketplace",
	"place de marche",
)

var ecommerceSectors = keywordSet(
	"ecommerce",
	"e-commerce",
	"vente en ligne",
	"d2c",
	"dtc",
)

var advisorySectors = keywordSet(
	"conseil",
	"consulting",
	"cabinet de conseil",
	"cabinet comptable",
	"cabinet d'expertise comptable",
	"expertise comptable",
	"expert-comptable",
	"avocat",
	"cabinet d'avocats",
	"agence web",
	"agence digitale",
	"agence de communication",
	"agence marketing",
	"architecte",
	"bureau d'etudes",
	"formation",
	"esn",
	"ssii",
	"services professionnels",
)

// firmPrefixes are the agency/firm-style lead words the advisory matcher
// accepts as a prefix: a sector like "agence seo" matches because the
// advisory list contains other "agence ..." entries.
var firmPrefixes = []string{"agence", "cabinet", "bureau"}

var retailSectors = keywordSet(
	"commerce",
	"commerce de detail",
	"boutique",
	"magasin",
	"retail",
	"restaurant",
	"restauration",
	"boulangerie",
	"coiffure",
	"pressing",
)

var industrialSectors = keywordSet(
	"industrie",
	"industriel",
	"usine",
	"fabrication",
	"production industrielle",
	"manufacture",
	"btp",
	"construction",
	"mecanique",
	"agroalimentaire",
)

// wholesaleCodePrefix is the industry-code division for wholesale trade
// (NAF/NACE division 46).
const wholesaleCodePrefix = "46"

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// matchesAdvisory applies exact membership plus the firm-prefix rule: a
// sector beginning with an agency/firm prefix matches when the advisory
// list contains at least one keyword with the same prefix.
func matchesAdvisory(sector string) bool {
	if advisorySectors[sector] {
		return true
	}
	for _, prefix := range firmPrefixes {
		if !strings.HasPrefix(sector, prefix) {
			continue
		}
		for kw := range advisorySectors {
			if strings.HasPrefix(kw, prefix) {
				return true
			}
		}
	}
	return false
}
