package form

// ListOptions provides filtering options for listing forms.
type ListOptions struct {
	Tags   []string
	Search string
}
