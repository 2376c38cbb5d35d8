package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/Werneck0live/simulador-trabalhista/internal/labor"
)

// venderDias omitido = simula com e sem venda
type VacationRequestDTO struct {
	CNPJ            string `json:"cnpj" validate:"required,cnpj"`
	NomeFuncionario string `json:"nomeFuncionario" validate:"required"`
	DiasFerias      int    `json:"diasFerias" validate:"required,min=1,max=30"`
	VenderDias      *bool  `json:"venderDias,omitempty"`
}

type TerminationRequestDTO struct {
	CNPJ         string `json:"cnpj" validate:"required,cnpj"`
	NomeOuCPF    string `json:"nomeOuCPF" validate:"required"`
	DataDemissao string `json:"dataDemissao" validate:"required,datetime=2006-01-02"`
	TipoRescisao string `json:"tipoRescisao" validate:"required"`
}

type DocumentSearchDTO struct {
	CNPJ string `json:"cnpj" validate:"required,cnpj"`
	Tipo string `json:"tipo" validate:"required"`
	Mes  string `json:"mes,omitempty"`
}

type VacationDTO struct {
	Funcionario         string `json:"funcionario"`
	SalarioBase         string `json:"salarioBase"`
	DiasFerias          int    `json:"diasFerias"`
	DiasVendidos        int    `json:"diasVendidos"`
	ValorFerias         string `json:"valorFerias"`
	TercoConstitucional string `json:"tercoConstitucional"`
	AbonoPecuniario     string `json:"abonoPecuniario"`
	TercoSobreAbono     string `json:"tercoSobreAbono"`
	TotalBruto          string `json:"totalBruto"`
	INSS                string `json:"inss"`
	IRRF                string `json:"irrf"`
	TotalLiquido        string `json:"totalLiquido"`
	VendeuFerias        string `json:"vendeuFerias"`
}

type VacationChoicesDTO struct {
	SemVender VacationDTO `json:"semVender"`
	Vendendo  VacationDTO `json:"vendendo"`
}

type TerminationDTO struct {
	Funcionario         string `json:"funcionario"`
	TipoRescisao        string `json:"tipoRescisao"`
	SalarioBase         string `json:"salarioBase"`
	MesesTrabalhados    int    `json:"mesesTrabalhados"`
	SaldoSalario        string `json:"saldoSalario"`
	AvisoPrevio         string `json:"avisoPrevio"`
	FeriasVencidas      string `json:"feriasVencidas"`
	FeriasProporcionais string `json:"feriasProporcionais"`
	DecimoTerceiro      string `json:"decimoTerceiro"`
	MultaFGTS           string `json:"multaFgts"`
	FGTS                string `json:"fgts"`
	TotalBruto          string `json:"totalBruto"`
}

// valores monetários saem com 2 casas; o cálculo interno não arredonda
func money(d decimal.Decimal) string { return d.StringFixed(2) }

func toVacationDTO(r labor.VacationResult) VacationDTO {
	sold := "Não"
	if r.Sold {
		sold = "Sim"
	}
	return VacationDTO{
		Funcionario:         r.EmployeeName,
		SalarioBase:         money(r.BaseSalary),
		DiasFerias:          r.RequestedDays,
		DiasVendidos:        r.SoldDays,
		ValorFerias:         money(r.VacationValue),
		TercoConstitucional: money(r.ConstitutionalThird),
		AbonoPecuniario:     money(r.SellBonus),
		TercoSobreAbono:     money(r.BonusThird),
		TotalBruto:          money(r.GrossTotal),
		INSS:                money(r.SocialSecurity),
		IRRF:                money(r.IncomeTax),
		TotalLiquido:        money(r.NetTotal),
		VendeuFerias:        sold,
	}
}

func toTerminationDTO(r labor.TerminationResult) TerminationDTO {
	return TerminationDTO{
		Funcionario:         r.EmployeeName,
		TipoRescisao:        string(r.TerminationType),
		SalarioBase:         money(r.BaseSalary),
		MesesTrabalhados:    r.TenureMonths,
		SaldoSalario:        money(r.BalanceOfSalary),
		AvisoPrevio:         money(r.NoticePay),
		FeriasVencidas:      money(r.ExpiredVacation),
		FeriasProporcionais: money(r.ProportionalVacation),
		DecimoTerceiro:      money(r.ThirteenthSalary),
		MultaFGTS:           money(r.SeverancePenalty),
		FGTS:                money(r.SeveranceAccrual),
		TotalBruto:          money(r.GrossTotal),
	}
}
