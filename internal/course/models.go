package course

import "time"

// Content kinds used by LessonContent.ContentType. The set is open-ended;
// callers may store other tags.
const (
	ContentTypeText  = "text"
	ContentTypeVideo = "video"
	ContentTypeQuiz  = "quiz"
	ContentTypePDF   = "pdf"
)

// StudentProgress is stored and returned as-is; the service never inspects it.
type StudentProgress map[string]interface{}

// Course is the persisted course document. ContentList is embedded in the
// same document and its order is the order lessons are presented in.
type Course struct {
	ID           string            `json:"id" bson:"_id,omitempty"`
	Title        string            `json:"title" bson:"title"`
	Description  string            `json:"description" bson:"description"`
	Category     string            `json:"category,omitempty" bson:"category,omitempty"`
	Level        string            `json:"level,omitempty" bson:"level,omitempty"`
	ImagePath    *string           `json:"imagePath" bson:"imagePath,omitempty"`
	Duration     string            `json:"duration,omitempty" bson:"duration,omitempty"`
	Language     string            `json:"language,omitempty" bson:"language,omitempty"`
	Tags         []string          `json:"tags" bson:"tags"`
	ProgressList []StudentProgress `json:"progressList" bson:"progressList"`
	ContentList  []LessonContent   `json:"contentList" bson:"contentList"`
	Version      int64             `json:"version" bson:"version"`
	CreatedAt    time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// LessonContent is one entry of a course's contentList. It has no storage
// identity outside its parent course.
type LessonContent struct {
	ID             string `json:"id" bson:"id"`
	Title          string `json:"title" bson:"title"`
	ContentType    string `json:"contentType" bson:"contentType"`
	Content        string `json:"content" bson:"content"`
	Order          int    `json:"order" bson:"order"`
	LessonType     string `json:"lessonType,omitempty" bson:"lessonType,omitempty"`
	Duration       string `json:"duration,omitempty" bson:"duration,omitempty"`
	VideoURL       string `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	PreviewEnabled bool   `json:"previewEnabled" bson:"previewEnabled"`
	ResourceURL    string `json:"resourceUrl,omitempty" bson:"resourceUrl,omitempty"`
	QuizLink       string `json:"quizLink,omitempty" bson:"quizLink,omitempty"`
	Completed      bool   `json:"completed" bson:"completed"`
}

// Clone returns a deep copy of the course.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	out := *c
	if c.ImagePath != nil {
		p := *c.ImagePath
		out.ImagePath = &p
	}
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	if c.ProgressList != nil {
		out.ProgressList = make([]StudentProgress, len(c.ProgressList))
		for i, p := range c.ProgressList {
			cp := make(StudentProgress, len(p))
			for k, v := range p {
				cp[k] = v
			}
			out.ProgressList[i] = cp
		}
	}
	if c.ContentList != nil {
		out.ContentList = append([]LessonContent(nil), c.ContentList...)
	}
	return &out
}
