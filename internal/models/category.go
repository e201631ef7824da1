package models

// Category — закрытый перечень категорий промо-инструментов.
//
// Аллокатор опирается на исчерпывающий набор категорий, поэтому произвольные
// строки из каталога нормализуются в известный член перечня либо в CategoryUnknown.
type Category string

const (
	CategoryPayroll      Category = "Payroll"
	CategoryHR           Category = "HR"
	CategoryRecruiting   Category = "Recruiting"
	CategoryBenefits     Category = "Benefits"
	CategoryCompliance   Category = "Compliance"
	CategoryProductivity Category = "Productivity"
	// CategoryUnknown — фолбэк для отсутствующей/нераспознанной категории.
	CategoryUnknown Category = "Unknown"
)

// Categories — полный упорядоченный список известных категорий (без Unknown).
func Categories() []Category {
	return []Category{
		CategoryPayroll,
		CategoryHR,
		CategoryRecruiting,
		CategoryBenefits,
		CategoryCompliance,
		CategoryProductivity,
	}
}

// ParseCategory нормализует строку из каталога в член перечня.
// Пустая или нераспознанная строка -> CategoryUnknown.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryPayroll, CategoryHR, CategoryRecruiting,
		CategoryBenefits, CategoryCompliance, CategoryProductivity:
		return Category(s)
	default:
		return CategoryUnknown
	}
}

// String возвращает строковое представление категории.
func (c Category) String() string {
	return string(c)
}
