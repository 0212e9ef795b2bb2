package service

import (
    "context"
    "fmt"
    "log/slog"

    "golang.org/x/crypto/bcrypt"

    "userhub/internal/mail"
    "userhub/internal/passreset"
    "userhub/internal/repository"
)

// PasswordReset runs the request/confirm handshake. Request never reveals
// whether an account exists; Confirm collapses every sub-failure into
// ErrInvalidLink.
type PasswordReset struct {
    repo     repository.UserRepository
    gen      *passreset.Generator
    mailer   mail.Sender
    linkBase string
    log      *slog.Logger
}

func NewPasswordReset(repo repository.UserRepository, gen *passreset.Generator, mailer mail.Sender, linkBase string, log *slog.Logger) *PasswordReset {
    return &PasswordReset{repo: repo, gen: gen, mailer: mailer, linkBase: linkBase, log: log}
}

// Request issues a reset link for the email, if it belongs to a
// password-backed account. It always succeeds from the caller's point of
// view; mail delivery is best-effort and its failure is only logged.
func (s *PasswordReset) Request(ctx context.Context, email string) {
    user, err := s.repo.FindByEmail(ctx, email)
    if err != nil {
        s.log.DebugContext(ctx, "password reset requested for unknown email")
        return
    }
    if !user.HasUsablePassword() {
        // Federated account: a password reset would enable a login path
        // the account never had.
        return
    }

    tok := s.gen.Make(user)
    link := fmt.Sprintf("%s/api/password-reset-confirm/%s/%s/",
        s.linkBase, passreset.EncodeUID(user.ID), tok)
    body := "Use the link below to choose a new password:\r\n\r\n" + link

    if err := s.mailer.Send(ctx, user.Email, "Password reset", body); err != nil {
        s.log.WarnContext(ctx, "reset mail dispatch failed", "user_id", user.ID, "error", err)
    }
}

// Confirm consumes a reset link. Decoding failures, unknown users and
// stale tokens are indistinguishable to the caller.
func (s *PasswordReset) Confirm(ctx context.Context, encodedUID, tok, newPassword string) error {
    if newPassword == "" {
        return ErrPasswordRequired
    }
    if len(newPassword) < 8 {
        return ErrPasswordTooShort
    }

    id, err := passreset.DecodeUID(encodedUID)
    if err != nil {
        return ErrInvalidLink
    }
    user, err := s.repo.FindByID(ctx, id)
    if err != nil {
        return ErrInvalidLink
    }
    if !s.gen.Check(user, tok) {
        return ErrInvalidLink
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
    if err != nil {
        return err
    }
    // The new hash changes the token derivation input, which retires this
    // token and any other outstanding one for the user.
    return s.repo.SetPassword(ctx, user.ID, string(hash))
}
