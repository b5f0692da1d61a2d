package dto

// CreateResourceRequest is the payload for adding a library resource.
type CreateResourceRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=video audio article guide" example:"article"`
	Category    string `json:"category" binding:"required" example:"Anxiety"`
	Language    string `json:"language" binding:"omitempty" example:"English"`
}
