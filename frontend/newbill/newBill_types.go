package newbill

import "billable/frontend/shared/nav"

// BadFormatMessage is the user-facing alert for a rejected receipt file.
// The wording is a compatibility contract; do not rephrase it.
const BadFormatMessage = "Mauvais format.jpg/.jpeg/.png seulement."

// DraftInput stages an uploaded receipt before the form is submitted.
type DraftInput struct {
	Email    string
	FileName string
	Blob     []byte
	MIMEType string
}

// UploadResponse is the staged reference answered to the form after a
// successful receipt upload.
type UploadResponse struct {
	ID       string `json:"id"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// SubmitInput carries the completed form fields for a staged draft.
type SubmitInput struct {
	BillID     string  `validate:"required"`
	Email      string  `validate:"required,email"`
	Type       string  `validate:"required"`
	Name       string  `validate:"required"`
	Amount     float64 `validate:"required,gt=0"`
	Date       string  `validate:"required,datetime=2006-01-02"`
	VAT        string
	Pct        int64 `validate:"gte=0,lte=100"`
	Commentary string
}

type PageData struct {
	Nav     nav.TopNavData
	Message string
}
