package entities

// Language is an entry of the language picker.
type Language struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Flag      string `json:"flag"`
	Available bool   `json:"available"`
}

// SimpleWord is one vocabulary row of a lesson.
type SimpleWord struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// SimpleLesson is a static lesson plus its completion flag.
type SimpleLesson struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Words       []SimpleWord `json:"words"`
	IsCompleted bool         `json:"-"`
}

// LanguageBlock groups the lessons of one language.
type LanguageBlock struct {
	Language Language
	Lessons  []SimpleLesson
}

func (b LanguageBlock) CompletedLessons() int {
	n := 0
	for _, l := range b.Lessons {
		if l.IsCompleted {
			n++
		}
	}
	return n
}

func (b LanguageBlock) TotalLessons() int {
	return len(b.Lessons)
}

// Progress is the completed fraction in [0,1].
func (b LanguageBlock) Progress() float64 {
	if len(b.Lessons) == 0 {
		return 0
	}
	return float64(b.CompletedLessons()) / float64(len(b.Lessons))
}

func (b LanguageBlock) IsComplete() bool {
	return len(b.Lessons) > 0 && b.CompletedLessons() == len(b.Lessons)
}

// Lesson finds a lesson by id.
func (b LanguageBlock) Lesson(id string) (SimpleLesson, bool) {
	for _, l := range b.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return SimpleLesson{}, false
}
