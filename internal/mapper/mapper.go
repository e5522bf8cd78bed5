// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"net/url"
	"strings"

	"push-review-queue/internal/entities"
	api "push-review-queue/internal/oapi"
)

// DiffURL builds {base}/{name}/{previous}/{version}. First releases have nothing to compare against.
func DiffURL(base, name string, previous *string, version string) string {
	if previous == nil || *previous == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" +
		url.PathEscape(name) + "/" +
		url.PathEscape(*previous) + "/" +
		url.PathEscape(version)
}

// previousVersion maps an empty previous version to nil so first releases read the same everywhere.
func previousVersion(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

// ToPendingItem maps entities.PendingItem to transport model.
func ToPendingItem(item entities.PendingItem, diffBase string) api.PendingItem {
	return api.PendingItem{
		Name:             item.Name,
		Version:          item.Version,
		PreviousVersion:  previousVersion(item.PreviousVersion),
		VersionCreatedAt: item.VersionCreatedAt,
		DiffUrl:          DiffURL(diffBase, item.Name, item.PreviousVersion, item.Version),
	}
}

// ToReportItem maps entities.ReportItem to transport model.
func ToReportItem(item entities.ReportItem, diffBase string) api.ReportItem {
	return api.ReportItem{
		Name:            item.Name,
		Version:         item.Version,
		PreviousVersion: previousVersion(item.PreviousVersion),
		Approvals:       item.Approvals,
		Rejections:      item.Rejections,
		Skips:           item.Skips,
		DiffUrl:         DiffURL(diffBase, item.Name, item.PreviousVersion, item.Version),
	}
}

// ToReportItemList maps a slice of entities.ReportItem to transport slice.
func ToReportItemList(list []entities.ReportItem, diffBase string) []api.ReportItem {
	res := make([]api.ReportItem, 0, len(list))
	for _, item := range list {
		res = append(res, ToReportItem(item, diffBase))
	}
	return res
}

// ToReport maps the progress report to transport model.
func ToReport(rep entities.Report, diffBase string) api.Report {
	return api.Report{
		Sampled:       rep.Sampled,
		TotalResolved: rep.TotalResolved,
		ApprovedCount: len(rep.Approved),
		RejectedCount: len(rep.Rejected),
		DisputedCount: len(rep.Disputed),
		Approved:      ToReportItemList(rep.Approved, diffBase),
		Rejected:      ToReportItemList(rep.Rejected, diffBase),
		Disputed:      ToReportItemList(rep.Disputed, diffBase),
	}
}
