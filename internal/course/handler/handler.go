package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/newcourse/newcourse/backend/course-service/internal/course/service"
	"github.com/newcourse/newcourse/backend/course-service/internal/storage"
	"github.com/newcourse/newcourse/backend/course-service/pkg/logger"
)

type courseHandler struct {
	svc      service.Service
	maxBytes int64
}

// RegisterCourseRoutes mounts the course API under /api/courses. maxBytes
// caps multipart request bodies; zero disables the cap.
func RegisterCourseRoutes(r *gin.Engine, svc service.Service, maxBytes int64) {
	h := &courseHandler{svc: svc, maxBytes: maxBytes}
	g := r.Group("/api/courses")

	g.GET("", h.listCourses)
	g.POST("", h.createCourse)
	g.GET("/:id", h.getCourse)
	g.PUT("/:id", h.updateCourse)
	g.DELETE("/:id", h.deleteCourse)

	g.GET("/:id/content", h.listContent)
	g.POST("/:id/content", h.addContent)
	g.PUT("/:id/content/:contentId", h.updateContent)
	g.DELETE("/:id/content/:contentId", h.deleteContent)
	g.POST("/:id/generate-content", h.generateContent)

	g.POST("/:id/image", h.uploadImage)
	g.POST("/:id/content/:contentId/video", h.uploadVideo)
	g.POST("/:id/content/:contentId/resource", h.uploadResource)
}

// RegisterUploadRoutes serves stored uploads back under /uploads.
func RegisterUploadRoutes(r *gin.Engine, store storage.ObjectStore) {
	r.GET("/uploads/*filepath", func(c *gin.Context) {
		key := "uploads" + c.Param("filepath")
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			logger.Errorf("open upload %s: %v", key, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
			return
		}
		defer rc.Close()
		ct := mime.TypeByExtension(path.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Header("Content-Type", ct)
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, rc); err != nil {
			logger.Warnf("serve upload %s: %v", key, err)
		}
	})
}

func (h *courseHandler) listCourses(c *gin.Context) {
	list, err := h.svc.ListCourses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *courseHandler) getCourse(c *gin.Context) {
	out, err := h.svc.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// createCourse accepts either a JSON course or a multipart form with the
// metadata as fields, tags as a JSON array and an optional image part.
func (h *courseHandler) createCourse(c *gin.Context) {
	var (
		in    course.Course
		image *service.File
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.limitBody(c)
		in = course.Course{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Category:    c.PostForm("category"),
			Level:       c.PostForm("level"),
			Duration:    c.PostForm("duration"),
			Language:    c.PostForm("language"),
		}
		if raw := c.PostForm("tags"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &in.Tags); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "tags must be a JSON array of strings"})
				return
			}
		}
		fh, err := c.FormFile("image")
		switch {
		case err == nil:
			f, closeFn, err := openPart(fh)
			if err != nil {
				writeError(c, err)
				return
			}
			defer closeFn()
			image = f
		case errors.Is(err, http.ErrMissingFile):
		default:
			writeFormError(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.svc.CreateCourse(c.Request.Context(), &in, image)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *courseHandler) updateCourse(c *gin.Context) {
	var in course.Course
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.UpdateCourse(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *courseHandler) deleteCourse(c *gin.Context) {
	if err := h.svc.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

func (h *courseHandler) listContent(c *gin.Context) {
	list, err := h.svc.ListContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *courseHandler) addContent(c *gin.Context) {
	var item course.LessonContent
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.AddContent(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *courseHandler) updateContent(c *gin.Context) {
	var item course.LessonContent
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.UpdateContent(c.Request.Context(), c.Param("id"), c.Param("contentId"), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *courseHandler) deleteContent(c *gin.Context) {
	if err := h.svc.DeleteContent(c.Request.Context(), c.Param("id"), c.Param("contentId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *courseHandler) generateContent(c *gin.Context) {
	out, err := h.svc.GenerateContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *courseHandler) uploadImage(c *gin.Context) {
	f, closeFn, ok := h.formFile(c, "image")
	if !ok {
		return
	}
	defer closeFn()
	out, err := h.svc.UploadCourseImage(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *courseHandler) uploadVideo(c *gin.Context) {
	f, closeFn, ok := h.formFile(c, "video")
	if !ok {
		return
	}
	defer closeFn()
	out, err := h.svc.UploadLessonVideo(c.Request.Context(), c.Param("id"), c.Param("contentId"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *courseHandler) uploadResource(c *gin.Context) {
	f, closeFn, ok := h.formFile(c, "resource")
	if !ok {
		return
	}
	defer closeFn()
	out, err := h.svc.UploadLessonResource(c.Request.Context(), c.Param("id"), c.Param("contentId"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// formFile reads the named multipart part. On failure the response has been
// written and ok is false.
func (h *courseHandler) formFile(c *gin.Context, field string) (*service.File, func(), bool) {
	h.limitBody(c)
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field '" + field + "'"})
			return nil, nil, false
		}
		writeFormError(c, err)
		return nil, nil, false
	}
	f, closeFn, err := openPart(fh)
	if err != nil {
		writeError(c, err)
		return nil, nil, false
	}
	return f, closeFn, true
}

func (h *courseHandler) limitBody(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}
}

func openPart(fh *multipart.FileHeader) (*service.File, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", course.ErrStorage, err)
	}
	return &service.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	}, func() { _ = src.Close() }, nil
}

func writeFormError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, course.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, course.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, course.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
