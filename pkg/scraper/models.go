package scraper

// Subject is a department listed on the term index page (e.g. "AIAA")
type Subject struct {
	Code string
	Name string
}

// Section type labels used as keys in the department schedule JSON
const (
	labelLecture    = "Lecture"
	labelTutorial   = "Tutorial"
	labelLab        = "Lab"
	labelRecitation = "Recitation"
)
