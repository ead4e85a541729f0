package db

// DataType selects one of the fixed post projections. Listings use Preview to
// avoid dragging the content column through every page.
type DataType string

const (
	DataFull    DataType = "full"
	DataPreview DataType = "preview"
	DataMinimal DataType = "minimal"
)

// columns returns the projected column set, or nil for all columns.
func (d DataType) columns() []string {
	switch d {
	case DataMinimal:
		return []string{
			Columns.Post.ID,
			Columns.Post.Title,
		}
	case DataPreview:
		return []string{
			Columns.Post.ID,
			Columns.Post.Slug,
			Columns.Post.Title,
			Columns.Post.Excerpt,
			Columns.Post.Status,
			Columns.Post.CreatedAt,
			Columns.Post.UpdatedAt,
			Columns.Post.DeletedAt,
			Columns.Post.TagIDs,
		}
	default:
		return nil
	}
}

func (d DataType) withTags() bool {
	return d != DataMinimal
}
