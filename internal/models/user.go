package models

// User is a registered person in the user collection.
type User struct {
	ID    string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name  string  `json:"name" gorm:"type:varchar(50);not null" validate:"required,min=2,max=50"`
	Email string  `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Phone *string `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
}

// UserInput is the body accepted when creating a user.
type UserInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=50"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

// User builds the record to store. The ID is assigned by the repository.
func (in UserInput) User() User {
	return User{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

// IsEmpty reports whether the update names no field at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil
}

// Apply merges the present fields into user.
func (u UserUpdate) Apply(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Phone != nil {
		phone := *u.Phone
		user.Phone = &phone
	}
}
