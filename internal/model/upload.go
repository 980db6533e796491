package model

// UploadResult is the descriptor returned once per successful upload.
// Pathname is the storage key and embeds the upload time and the original filename.
type UploadResult struct {
	URL                string `json:"url"`
	DownloadURL        string `json:"downloadUrl"`
	Pathname           string `json:"pathname"`
	ContentType        string `json:"contentType"`
	ContentDisposition string `json:"contentDisposition"`
}
