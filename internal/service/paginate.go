package service

// Paginate returns the slice [(page-1)*pageSize, page*pageSize) of list.
// Pages outside the list yield an empty slice rather than an error.
func Paginate[T any](list []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 || page > TotalPages(len(list), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := len(list)
	if remaining := end - start; remaining > pageSize {
		end = start + pageSize
	}
	return list[start:end:end]
}

// TotalPages is ceil(total / pageSize)
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}
