package pipeline

// Shape labels the content shape of a parsed CSV export. Exactly two shapes
// are supported; everything else is Unknown.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeViewingActivity
	ShapeBillingHistory
)

func (s Shape) String() string {
	switch s {
	case ShapeViewingActivity:
		return "viewing_activity"
	case ShapeBillingHistory:
		return "billing_history"
	default:
		return "unknown"
	}
}

// RawTable is a CSV file parsed into memory: column names exactly as read
// (case and whitespace untouched) and one map per row. A column absent from
// a ragged row is simply missing from its map.
type RawTable struct {
	Columns []string
	Rows    []map[string]string
}

// ViewingActivityRecord is one normalized viewing activity row. All text
// fields default to empty when the source column is absent; DurationSec
// degrades to 0 when the duration text is unparseable.
type ViewingActivityRecord struct {
	AccountID             string
	StartTime             string
	Duration              string
	DurationSec           int64
	Title                 string
	ProfileName           string
	DeviceType            string
	Country               string
	Bookmark              string
	LatestBookmark        string
	SupplementalVideoType string
	Attributes            string
}

// BillingHistoryRecord is one normalized billing history row. The three
// monetary amounts degrade to 0.0 when unparseable or absent; negative
// amounts (refunds) are preserved.
type BillingHistoryRecord struct {
	AccountID              string
	TransactionDate        string
	Country                string
	MopLast4               string
	FinalInvoiceResult     string
	MopPmtProcessorDesc    string
	PmtTxnType             string
	Description            string
	GrossSaleAmt           float64
	PmtStatus              string
	PaymentType            string
	TaxAmt                 float64
	ServicePeriodStartDate string
	ItemPriceAmt           float64
	MopCreationDate        string
	Currency               string
	NextBillingDate        string
	ServicePeriodEndDate   string
}
