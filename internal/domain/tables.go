package domain

var Tables = []interface{}{
	// Catalog
	&Product{},
	// Dashboard
	&User{},
	&Message{},
	&Task{},
}
