package domain

type PageContent struct {
	ID       string `json:"_id"`
	Page     string `json:"page"`
	HTMLCode string `json:"htmlCode"`
}

func FindPage(pages []PageContent, name string) (PageContent, bool) {
	for _, p := range pages {
		if p.Page == name {
			return p, true
		}
	}
	return PageContent{}, false
}
