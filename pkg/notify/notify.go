// Package notify renders completion notices and hands them to delivery channels.
package notify

import (
	"context"
	"fmt"

	"github.com/noah-isme/learning-tracker/internal/models"
)

// Subject is the subject line of every completion notice.
const Subject = "Your Learning Progress"

// Deliverer hands a completion notice to a delivery channel.
type Deliverer interface {
	Deliver(ctx context.Context, notice models.CompletionNotice) error
}

// Render produces the message text sent to the student.
func Render(notice models.CompletionNotice) string {
	return fmt.Sprintf("To: %s\nRe: %s\nHello, %s! You have accomplished our %s course!",
		notice.Email, Subject, notice.FullName, notice.CourseName)
}
