package lawref

// statuteCodes maps a canonical statute name to its short code. The code is
// the first component of every article RecordID, so entries here must never
// be renamed once a corpus has been ingested.
var statuteCodes = map[string]string{
	"Civil Code":                   "CIV",
	"Criminal Code":                "CRIM",
	"Consumer Protection Act":      "CPA",
	"Labor Standards Act":          "LSA",
	"Company Act":                  "COMP",
	"Copyright Act":                "COPY",
	"Personal Data Protection Act": "PDPA",
	"Fair Trade Act":               "FTA",
	"Insurance Act":                "INS",
	"Income Tax Act":               "ITA",
	"Road Traffic Act":             "RTA",
	"Housing Lease Act":            "HLA",
}

// statuteAliases maps colloquial names and abbreviations to canonical statute
// names. Keys are matched case-insensitively. Many-to-one.
var statuteAliases = map[string]string{
	"civil law":                "Civil Code",
	"criminal law":             "Criminal Code",
	"penal code":               "Criminal Code",
	"CPA":                      "Consumer Protection Act",
	"consumer protection law":  "Consumer Protection Act",
	"consumer act":             "Consumer Protection Act",
	"LSA":                      "Labor Standards Act",
	"labor law":                "Labor Standards Act",
	"labour standards act":     "Labor Standards Act",
	"employment law":           "Labor Standards Act",
	"company law":              "Company Act",
	"corporate law":            "Company Act",
	"copyright law":            "Copyright Act",
	"PDPA":                     "Personal Data Protection Act",
	"privacy act":              "Personal Data Protection Act",
	"data protection act":      "Personal Data Protection Act",
	"FTA":                      "Fair Trade Act",
	"antitrust law":            "Fair Trade Act",
	"insurance law":            "Insurance Act",
	"tax law":                  "Income Tax Act",
	"traffic law":              "Road Traffic Act",
	"tenancy law":              "Housing Lease Act",
	"rental law":               "Housing Lease Act",
}

// ConceptRule maps a colloquial legal concept to the statute that governs it.
// Concept, when non-empty, is the canonical term substituted for the raw
// query term before retrieval.
type ConceptRule struct {
	Statute string
	Concept string
}

// conceptRules maps lowercase concept terms to their governing statute.
// Matching is longest-key-first: "misleading advertising" must win over
// "advertising" when both are contained in a query.
var conceptRules = map[string]ConceptRule{
	"tort":                    {Statute: "Civil Code", Concept: "tort liability"},
	"negligence":              {Statute: "Civil Code", Concept: "negligence liability for damages"},
	"unjust enrichment":       {Statute: "Civil Code"},
	"breach of contract":      {Statute: "Civil Code", Concept: "non-performance of obligations"},
	"security deposit":        {Statute: "Housing Lease Act"},
	"eviction":                {Statute: "Housing Lease Act", Concept: "termination of lease"},
	"fraud":                   {Statute: "Criminal Code", Concept: "offense of fraudulence"},
	"defamation":              {Statute: "Criminal Code", Concept: "offense against reputation"},
	"drunk driving":           {Statute: "Criminal Code", Concept: "driving under the influence"},
	"hit and run":             {Statute: "Criminal Code", Concept: "leaving the scene of an accident"},
	"dismissal":               {Statute: "Labor Standards Act", Concept: "termination of employment"},
	"unlawful dismissal":      {Statute: "Labor Standards Act", Concept: "termination without statutory cause"},
	"overtime pay":            {Statute: "Labor Standards Act", Concept: "wages for extended working hours"},
	"severance pay":           {Statute: "Labor Standards Act", Concept: "severance payment"},
	"refund":                  {Statute: "Consumer Protection Act"},
	"cooling-off period":      {Statute: "Consumer Protection Act", Concept: "rescission of distance sales"},
	"advertising":             {Statute: "Consumer Protection Act", Concept: "truthfulness of advertisements"},
	"misleading advertising":  {Statute: "Fair Trade Act", Concept: "false or misleading representations"},
	"fair use":                {Statute: "Copyright Act", Concept: "reasonable use of works"},
	"data breach":             {Statute: "Personal Data Protection Act", Concept: "security maintenance of personal data files"},
	"speeding":                {Statute: "Road Traffic Act", Concept: "exceeding speed limits"},
}
