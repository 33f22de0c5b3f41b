package mailer

import (
	"fmt"

	"ContactServer/config"

	"gopkg.in/gomail.v2"
)

// Mailer SMTP 通知邮件发送器。
// 只发尽力而为的提醒邮件，发送失败由调用方记日志后放弃。
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New 根据配置创建发送器。
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendContactAdded 通知 to：ownerName 把你加为了联系人。
func (m *Mailer) SendContactAdded(to, ownerName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "你被添加为联系人")
	msg.SetBody("text/plain", fmt.Sprintf("%s 已将你添加为联系人。", ownerName))

	return m.dialer.DialAndSend(msg)
}
