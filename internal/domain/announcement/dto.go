package announcement

import "github.com/kantorkita/hr-backend-go/internal/pkg/validator"

type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAnnouncementRequest struct {
	ID    string `json:"-"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAnnouncementsFilter struct {
	Search *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type AnnouncementResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	PublishedAt string  `json:"published_at"`
	Status      string  `json:"status"`
	AuthorName  *string `json:"author_name,omitempty"`
}

func ToResponse(a Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		PublishedAt: a.PublishedAt.Format("2006-01-02 15:04:05"),
		Status:      string(a.Status),
		AuthorName:  a.AuthorName,
	}
}
