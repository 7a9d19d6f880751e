package mapping

// The raw tables below keep the inherently many-to-many relationship
// between the source taxonomy and the target vocabularies as data;
// Prepare applies the first-match resolution as a pure function, so an
// alternate resolution strategy can be substituted without touching
// callers.

// ItemTypeMap maps source item types to resource class candidates. The
// mapping is one-to-one when the FaBiO ontology is registered; without it
// the bibo fallbacks apply and some distinctions are lost.
var ItemTypeMap = RawMap{
	"artwork":             {"fabio:artisticWork", "bibo:Image"},
	"attachment":          {"bibo:DocumentPart", "bibo:Document"},
	"audioRecording":      {"bibo:AudioDocument"},
	"bill":                {"bibo:Bill"},
	"blogPost":            {"fabio:blogPost", "bibo:Article"},
	"book":                {"bibo:Book"},
	"bookSection":         {"bibo:BookSection"},
	"case":                {"bibo:LegalCaseDocument"},
	"computerProgram":     {"dctype:software", "bibo:Document"},
	"conferencePaper":     {"fabio:ConferencePaper", "bibo:Article"},
	"dictionaryEntry":     {"fabio:ReferenceEntry", "bibo:Article"},
	"document":            {"bibo:Document"},
	"email":               {"bibo:Email"},
	"encyclopediaArticle": {"fabio:Entry", "bibo:Article"},
	"film":                {"bibo:Film"},
	"forumPost":           {"fabio:Opinion", "bibo:Article"},
	"hearing":             {"bibo:Hearing"},
	"instantMessage":      {"bibo:PersonalCommunication"},
	"interview":           {"bibo:Interview"},
	"journalArticle":      {"bibo:AcademicArticle"},
	"letter":              {"bibo:Letter"},
	"magazineArticle":     {"fabio:MagazineArticle", "bibo:Article"},
	"manuscript":          {"bibo:Manuscript"},
	"map":                 {"bibo:Map"},
	"newspaperArticle":    {"fabio:NewspaperArticle", "bibo:Article"},
	"note":                {"bibo:Note"},
	"patent":              {"bibo:Patent"},
	"podcast":             {"fabio:AudioDocument", "bibo:AudioDocument"},
	"presentation":        {"bibo:Slideshow"},
	"radioBroadcast":      {"dctype:Sound", "bibo:AudioDocument"},
	"report":              {"bibo:Report"},
	"statute":             {"bibo:Statute"},
	"tvBroadcast":         {"fabio:MovingImage", "bibo:AudioVisualDocument"},
	"thesis":              {"bibo:Thesis"},
	"videoRecording":      {"bibo:AudioVisualDocument"},
	"webpage":             {"bibo:Webpage"},
}

// ItemFieldMap maps source record fields to property candidates. Many
// source fields depend on the item type; only the generally applicable
// ones are mapped.
var ItemFieldMap = RawMap{
	"abstractNote":         {"dcterms:abstract"},
	"archiveLocation":      {"dcterms:source"},
	"artworkMedium":        {"dcterms:medium"},
	"artworkSize":          {"dcterms:extent"},
	"callNumber":           {"bibo:lccn"},
	"committee":            {"bibo:organizer"},
	"conferenceName":       {"bibo:presentedAt"},
	"court":                {"bibo:court"},
	"date":                 {"dcterms:date"},
	"distributor":          {"bibo:distributor"},
	"documentNumber":       {"bibo:number"},
	"DOI":                  {"bibo:doi"},
	"edition":              {"bibo:edition"},
	"filingDate":           {"dcterms:dateSubmitted"},
	"firstPage":            {"bibo:pageStart"},
	"genre":                {"dcterms:type"},
	"ISBN":                 {"bibo:isbn"},
	"ISSN":                 {"bibo:issn"},
	"issue":                {"bibo:issue"},
	"issueDate":            {"dcterms:issued"},
	"issuingAuthority":     {"bibo:issuer"},
	"language":             {"dcterms:language"},
	"legalStatus":          {"bibo:status"},
	"numberOfVolumes":      {"bibo:numberOfVolumes"},
	"numPages":             {"bibo:numPages"},
	"pages":                {"bibo:pages"},
	"publisher":            {"dcterms:publisher"},
	"rights":               {"dcterms:rights"},
	"section":              {"bibo:section"},
	"seriesText":           {"dcterms:description"},
	"shortTitle":           {"bibo:shortTitle"},
	"title":                {"dcterms:title"},
	"url":                  {"bibo:uri"},
	"videoRecordingFormat": {"dcterms:format"},
	"volume":               {"bibo:volume"},
}

// CreatorTypeMap maps source creator roles to property candidates. Roles
// with an empty list have no sensible target property; their creators are
// knowingly dropped.
var CreatorTypeMap = RawMap{
	"author":         {"dcterms:creator"},
	"contributor":    {"dcterms:contributor"},
	"editor":         {"bibo:editor"},
	"translator":     {"bibo:translator"},
	"seriesEditor":   {"bibo:editor"},
	"interviewee":    {"bibo:interviewee"},
	"interviewer":    {"bibo:interviewer"},
	"director":       {"bibo:director"},
	"scriptwriter":   {},
	"producer":       {"bibo:producer"},
	"castMember":     {},
	"sponsor":        {"rdau:sponsor"},
	"counsel":        {},
	"inventor":       {"rdau:inventor"},
	"attorneyAgent":  {},
	"recipient":      {"bibo:recipient"},
	"performer":      {"bibo:performer"},
	"composer":       {"rdau:composer"},
	"wordsBy":        {},
	"cartographer":   {"rdau:cartographer"},
	"programmer":     {"rdau:programmer"},
	"reviewedAuthor": {},
	"artist":         {"rdau:artist"},
	"commenter":      {},
	"presenter":      {"rdau:presenter"},
	"guest":          {},
	"podcaster":      {},
	"cosponsor":      {},
	"bookAuthor":     {"dcterms:creator"},
}
