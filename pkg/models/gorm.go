package models

func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&User{}, // Must be first - contacts reference it
		&Contact{},
	}
}
