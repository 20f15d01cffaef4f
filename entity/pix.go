package entity

// PixIntent is the displayable result of an automated pix payment-intent:
// the copy-paste code and a renderable QR image, tied to the order the
// payment service created in awaiting-payment state.
type PixIntent struct {
	OrderID       string `json:"orderId"`
	OrderNumber   int    `json:"orderNumber"`
	Code          string `json:"code"`
	QRImageBase64 string `json:"qrImageBase64"`
	ExpiresIn     int    `json:"expiresIn"`
}
