package domain

// QuoteStatus is the business lifecycle status of a quote. Transitions are
// not enforced.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "bozza"
	QuoteStatusSent     QuoteStatus = "inviato"
	QuoteStatusAccepted QuoteStatus = "accettato"
	QuoteStatusRejected QuoteStatus = "rifiutato"
	QuoteStatusExpired  QuoteStatus = "scaduto"
)

// ValidQuoteStatuses lists the accepted business statuses.
var ValidQuoteStatuses = map[QuoteStatus]bool{
	QuoteStatusDraft:    true,
	QuoteStatusSent:     true,
	QuoteStatusAccepted: true,
	QuoteStatusRejected: true,
	QuoteStatusExpired:  true,
}

// RecordState is the soft-delete state of a stored quote.
type RecordState string

const (
	RecordStateActive  RecordState = "attivo"
	RecordStateTrashed RecordState = "cestinato"
)

// ValidRecordStates lists the accepted record states.
var ValidRecordStates = map[RecordState]bool{
	RecordStateActive:  true,
	RecordStateTrashed: true,
}

// PageOrientation is the orientation of a rendered page.
type PageOrientation string

const (
	OrientationPortrait  PageOrientation = "portrait"
	OrientationLandscape PageOrientation = "landscape"
)

// ExportFormat selects the list export encoding.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// DocumentTypeQuote is the document type tag used by quote templates.
const DocumentTypeQuote = "preventivo"
