package pipeline

import (
	"strconv"
	"strings"
)

// Rename tables from the raw human-authored column names (lowercased) to the
// canonical snake_case names. Columns not listed here are dropped.
var viewingColumns = map[string]string{
	"start time":              "start_time",
	"duration":                "duration",
	"title":                   "title",
	"profile name":            "profile_name",
	"device type":             "device_type",
	"country":                 "country",
	"bookmark":                "bookmark",
	"latest bookmark":         "latest_bookmark",
	"supplemental video type": "supplemental_video_type",
	"attributes":              "attributes",
}

var billingColumns = map[string]string{
	"transaction date":          "transaction_date",
	"country":                   "country",
	"mop last 4":                "mop_last_4",
	"final invoice result":      "final_invoice_result",
	"mop pmt processor desc":    "mop_pmt_processor_desc",
	"pmt txn type":              "pmt_txn_type",
	"description":               "description",
	"gross sale amt":            "gross_sale_amt",
	"pmt status":                "pmt_status",
	"payment type":              "payment_type",
	"tax amt":                   "tax_amt",
	"service period start date": "service_period_start_date",
	"item price amt":            "item_price_amt",
	"mop creation date":         "mop_creation_date",
	"currency":                  "currency",
	"next billing date":         "next_billing_date",
	"service period end date":   "service_period_end_date",
}

// transformViewingActivity normalizes a table classified as viewing activity.
// One record per input row, in input order; accountID is injected into every
// record. Pure function of the table: running it twice yields identical
// sequences.
func transformViewingActivity(t *RawTable, accountID string) []ViewingActivityRecord {
	records := make([]ViewingActivityRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		canon := canonicalRow(t.Columns, viewingColumns, row)
		records = append(records, ViewingActivityRecord{
			AccountID:             accountID,
			StartTime:             canon["start_time"],
			Duration:              canon["duration"],
			DurationSec:           parseDurationSec(canon["duration"]),
			Title:                 canon["title"],
			ProfileName:           canon["profile_name"],
			DeviceType:            canon["device_type"],
			Country:               canon["country"],
			Bookmark:              canon["bookmark"],
			LatestBookmark:        canon["latest_bookmark"],
			SupplementalVideoType: canon["supplemental_video_type"],
			Attributes:            canon["attributes"],
		})
	}
	return records
}

// transformBillingHistory normalizes a table classified as billing history.
// Same contract as transformViewingActivity.
func transformBillingHistory(t *RawTable, accountID string) []BillingHistoryRecord {
	records := make([]BillingHistoryRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		canon := canonicalRow(t.Columns, billingColumns, row)
		records = append(records, BillingHistoryRecord{
			AccountID:              accountID,
			TransactionDate:        canon["transaction_date"],
			Country:                canon["country"],
			MopLast4:               canon["mop_last_4"],
			FinalInvoiceResult:     canon["final_invoice_result"],
			MopPmtProcessorDesc:    canon["mop_pmt_processor_desc"],
			PmtTxnType:             canon["pmt_txn_type"],
			Description:            canon["description"],
			GrossSaleAmt:           parseMoney(canon["gross_sale_amt"]),
			PmtStatus:              canon["pmt_status"],
			PaymentType:            canon["payment_type"],
			TaxAmt:                 parseMoney(canon["tax_amt"]),
			ServicePeriodStartDate: canon["service_period_start_date"],
			ItemPriceAmt:           parseMoney(canon["item_price_amt"]),
			MopCreationDate:        canon["mop_creation_date"],
			Currency:               canon["currency"],
			NextBillingDate:        canon["next_billing_date"],
			ServicePeriodEndDate:   canon["service_period_end_date"],
		})
	}
	return records
}

// canonicalRow maps one raw row onto canonical column names. Column order
// follows the header, so when duplicate source columns map to the same
// canonical name the rightmost wins.
func canonicalRow(columns []string, mapping map[string]string, row map[string]string) map[string]string {
	canon := make(map[string]string, len(mapping))
	for _, col := range columns {
		name, ok := mapping[normalizeColumn(col)]
		if !ok {
			continue
		}
		if v, present := row[col]; present {
			canon[name] = v
		}
	}
	return canon
}

// parseDurationSec converts Netflix duration text to seconds. Three
// colon-separated parts are HH:MM:SS, two are MM:SS. Anything else, empty
// input included, degrades silently to 0.
func parseDurationSec(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}

	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return 0
		}
		nums[i] = n
	}

	if len(nums) == 3 {
		return nums[0]*3600 + nums[1]*60 + nums[2]
	}
	return nums[0]*60 + nums[1]
}

// parseMoney converts monetary text like "$1,234.56" to a float. The dollar
// sign and thousands separators are stripped before parsing; unparseable or
// empty input degrades silently to 0.0. Negative amounts pass through.
func parseMoney(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
