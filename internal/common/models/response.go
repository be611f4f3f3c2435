package models

// Response adalah amplop standar semua endpoint.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Page adalah hasil daftar berhalaman.
type Page struct {
	List    interface{} `json:"list"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// NormalizePage mengembalikan nilai halaman yang aman beserta offset-nya.
func NormalizePage(page, perPage int) (int, int, int) {
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	if page <= 0 {
		page = 1
	}
	return page, perPage, (page - 1) * perPage
}
