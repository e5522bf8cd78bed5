package entities

// Bucket classifies a resolved push in the progress report.
type Bucket string

const (
	// BucketNone holds resolved pushes matching no rule.
	BucketNone Bucket = ""
	// BucketApproved holds unanimous approvals.
	BucketApproved Bucket = "approved"
	// BucketRejected holds unanimous rejections.
	BucketRejected Bucket = "rejected"
	// BucketDisputed holds pushes with both approvals and rejections.
	BucketDisputed Bucket = "disputed"
)

// ReportItem is a resolved push listed in the report.
type ReportItem struct {
	Name            string
	Version         string
	PreviousVersion *string
	Approvals       int64
	Rejections      int64
	Skips           int64
}

// Report summarises resolved pushes.
type Report struct {
	Sampled       bool
	TotalResolved int
	Approved      []ReportItem
	Rejected      []ReportItem
	Disputed      []ReportItem
}

// Classify returns the report bucket of a push.
// Disputed requires neither side to have reached the threshold on its own.
func Classify(r PushReview) Bucket {
	switch {
	case r.Approvals >= RequiredReviews && r.Rejections == 0:
		return BucketApproved
	case r.Rejections >= RequiredReviews && r.Approvals == 0:
		return BucketRejected
	case r.Approvals > 0 && r.Rejections > 0 &&
		r.Approvals < RequiredReviews && r.Rejections < RequiredReviews:
		return BucketDisputed
	}
	return BucketNone
}

// BuildReport buckets resolved pushes. Unresolved entries are ignored.
func BuildReport(records []PushReview) Report {
	rep := Report{
		Approved: make([]ReportItem, 0),
		Rejected: make([]ReportItem, 0),
		Disputed: make([]ReportItem, 0),
	}
	for _, r := range records {
		if !r.Resolved() {
			continue
		}
		rep.TotalResolved++
		item := ReportItem{
			Name:            r.Name,
			Version:         r.Version,
			PreviousVersion: r.PreviousVersion,
			Approvals:       r.Approvals,
			Rejections:      r.Rejections,
			Skips:           r.Skips,
		}
		switch Classify(r) {
		case BucketApproved:
			rep.Approved = append(rep.Approved, item)
		case BucketRejected:
			rep.Rejected = append(rep.Rejected, item)
		case BucketDisputed:
			rep.Disputed = append(rep.Disputed, item)
		}
	}
	return rep
}
