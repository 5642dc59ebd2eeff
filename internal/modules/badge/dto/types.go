package dto

type BadgeOutput struct {
	Code        string
	Name        string
	Description string
	Icon        string
	Permanent   bool
	Earned      bool
}
