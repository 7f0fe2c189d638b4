// internal/seeder/reports.go
package seeder

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"demo-pool/internal/model"
)

type reportSpec struct {
	name      string
	dataModel string
	columns   []model.ReportColumn
	filters   []model.ReportFilter
	sorts     []model.ReportSort
}

// The fixed menu of pre-built reports every workspace ships with.
var reportSpecs = []reportSpec{
	{
		name:      "Sales Dashboard",
		dataModel: "shop_orders",
		columns: []model.ReportColumn{
			{Name: "number", Label: "Order #", Searchable: true},
			{Name: "customer.name", Label: "Customer", Searchable: true},
			{Name: "total_price", Label: "Total", Type: "money"},
			{Name: "status", Label: "Status"},
			{Name: "created_at", Label: "Date", Type: "datetime"},
		},
		filters: []model.ReportFilter{
			{Field: "created_at", Operator: ">=", Value: "-30d"},
		},
		sorts: []model.ReportSort{
			{Field: "created_at", Direction: "desc"},
		},
	},
	{
		name:      "Customer Analytics",
		dataModel: "shop_customers",
		columns: []model.ReportColumn{
			{Name: "name", Label: "Name", Searchable: true},
			{Name: "email", Label: "Email", Searchable: true},
			{Name: "phone", Label: "Phone"},
			{Name: "birthday", Label: "Birthday", Type: "date"},
		},
		sorts: []model.ReportSort{
			{Field: "name", Direction: "asc"},
		},
	},
	{
		name:      "Product Inventory",
		dataModel: "shop_products",
		columns: []model.ReportColumn{
			{Name: "name", Label: "Product", Searchable: true},
			{Name: "brand.name", Label: "Brand"},
			{Name: "price", Label: "Price", Type: "money"},
			{Name: "sku", Label: "SKU"},
			{Name: "qty", Label: "Stock"},
		},
		filters: []model.ReportFilter{
			{Field: "qty", Operator: ">", Value: "0"},
		},
		sorts: []model.ReportSort{
			{Field: "name", Direction: "asc"},
		},
	},
	{
		name:      "Blog Analytics",
		dataModel: "blog_posts",
		columns: []model.ReportColumn{
			{Name: "title", Label: "Title", Searchable: true},
			{Name: "author.name", Label: "Author"},
			{Name: "category.name", Label: "Category"},
			{Name: "published_at", Label: "Published", Type: "datetime"},
		},
		filters: []model.ReportFilter{
			{Field: "published_at", Operator: "not_null", Value: ""},
		},
		sorts: []model.ReportSort{
			{Field: "published_at", Direction: "desc"},
		},
	},
}

var defaultReportSettings = map[string]any{
	"api": map[string]any{
		"enabled":   false,
		"auth_type": "api_key",
	},
	"filters": map[string]any{
		"global_logic_operator": "or",
	},
}

func reportDefinitions(wsID uuid.UUID) ([]*model.CustomReport, error) {
	settings, err := json.Marshal(defaultReportSettings)
	if err != nil {
		return nil, fmt.Errorf("marshal report settings: %w", err)
	}

	out := make([]*model.CustomReport, 0, len(reportSpecs))
	for _, spec := range reportSpecs {
		columns, err := json.Marshal(spec.columns)
		if err != nil {
			return nil, fmt.Errorf("marshal columns for %s: %w", spec.name, err)
		}
		filters, err := json.Marshal(orEmpty(spec.filters))
		if err != nil {
			return nil, fmt.Errorf("marshal filters for %s: %w", spec.name, err)
		}
		sorts, err := json.Marshal(orEmpty(spec.sorts))
		if err != nil {
			return nil, fmt.Errorf("marshal sorts for %s: %w", spec.name, err)
		}
		out = append(out, &model.CustomReport{
			ID:          uuid.New(),
			WorkspaceID: wsID,
			Name:        spec.name,
			DataModel:   spec.dataModel,
			Columns:     columns,
			Filters:     filters,
			Sorts:       sorts,
			Settings:    settings,
		})
	}
	return out, nil
}

// orEmpty keeps the jsonb payloads as [] instead of null for nil slices.
func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
