package entities

// Page описывает запрос страницы списка: номер с 1 и фиксированный размер.
type Page struct {
	Number int
	Size   int
}

// NewPage нормализует номер страницы: значения меньше 1 становятся 1.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: size}
}

// Limit возвращает размер страницы.
func (p Page) Limit() int {
	return p.Size
}

// Offset возвращает смещение первой статьи страницы.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages считает число страниц по количеству статей, сообщенному сервером.
func (p Page) TotalPages(total int) int {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// ArticleList - страница статей и общее количество по данным сервера.
type ArticleList struct {
	Articles      []Article
	ArticlesCount int
	Page          Page
}
