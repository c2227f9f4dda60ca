package handler

import (
	"github.com/repertoire/contacts-api/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		LastName:    req.Nom,
		FirstName:   req.Prenom,
		PhoneNumber: req.Numero,
		Password:    req.MotDePasse,
	}
}

func toPersonInput(req personRequest, userID int64) ports.PersonInput {
	return ports.PersonInput{
		UserID:    userID,
		LastName:  req.Nom,
		FirstName: req.Prenom,
		Telephone: req.Telephone,
	}
}
