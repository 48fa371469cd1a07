package extractor

import (
	"regexp"
	"strings"
)

// ContactWindow is the number of leading lines searched for name and email.
const ContactWindow = 10

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	namePattern  = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
)

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ExtractContact takes the first email match and the first line that is
// exactly "Firstname Lastname" from the contact window. Fields with no
// match stay empty.
func ExtractContact(c Corpus) Contact {
	var contact Contact

	for _, line := range c.Head(ContactWindow) {
		if contact.Email == "" {
			contact.Email = emailPattern.FindString(line)
		}
		if contact.Name == "" {
			if trimmed := strings.TrimSpace(line); namePattern.MatchString(trimmed) {
				contact.Name = trimmed
			}
		}
		if contact.Email != "" && contact.Name != "" {
			break
		}
	}

	return contact
}
