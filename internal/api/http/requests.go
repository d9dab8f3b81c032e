package http

// RenameRequest is the body of POST /rename
type RenameRequest struct {
	OldPath string `json:"old_path" binding:"required"`
	NewPath string `json:"new_path" binding:"required"`
}

// MoveRequest is the body of POST /move-item
type MoveRequest struct {
	SourcePath      string `json:"source_path" binding:"required"`
	DestinationPath string `json:"destination_path" binding:"required"`
}

// CreateFolderRequest is the body of POST /create-folder
type CreateFolderRequest struct {
	Path string `json:"path" binding:"required"`
}

// DeleteItemsRequest is the body of POST /delete-items
type DeleteItemsRequest struct {
	Paths []string `json:"paths" binding:"required,min=1,dive,required"`
}

// ViewQuery holds the GET /view_file parameters
type ViewQuery struct {
	FilePath   string `form:"file_path" binding:"required"`
	Depth      *int   `form:"depth"`
	Extensions string `form:"extensions"`
}

// SearchQuery holds the GET /search parameters
type SearchQuery struct {
	Root       string `form:"root" binding:"required"`
	Query      string `form:"q"`
	Extensions string `form:"extensions"`
	Limit      int    `form:"limit"`
}
